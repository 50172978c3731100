package rag

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"go.uber.org/zap"
)

// MockConnector fakes the RAG service for local runs and tests.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) IndexResume(ctx context.Context, sessionID, filename string, content []byte) (*entity.RAGIndexResponse, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty resume content provided")
	}

	ctxzap.Info(ctx, "[MOCK] indexing resume",
		zap.String("session_id", sessionID),
		zap.String("filename", filename),
		zap.Int("size", len(content)),
	)

	// Pretend 800-word chunks were produced from the upload.
	chunks := len(content)/4000 + 1

	return &entity.RAGIndexResponse{
		ChunksIndexed: chunks,
		Metadata:      map[string]any{"filename": filename, "mock": true},
	}, nil
}

func (m *MockConnector) GetContext(ctx context.Context, req *entity.RAGGetContextRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] getting resume context", zap.String("query", req.Query))

	return "Built a distributed order processing pipeline in Go. " +
		"Led migration of a monolith to event-driven services. " +
		"Implemented CI/CD and observability tooling for a 12-person team.", nil
}
