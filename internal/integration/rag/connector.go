package rag

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/integration/common"
	pkgretry "github.com/resumesavvy/interview-agent/internal/pkg/retry"
	pkghttp "github.com/resumesavvy/interview-agent/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.RAGConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.RAGConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// IndexResume uploads the resume to the RAG service for chunking and indexing.
// POST {index_endpoint} with multipart/form-data (session_id, file)
func (c *Connector) IndexResume(ctx context.Context, sessionID, filename string, content []byte) (*entity.RAGIndexResponse, error) {
	ctxzap.Info(ctx, "indexing resume in RAG service",
		zap.String("filename", filename),
		zap.Int("size", len(content)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		if err := writer.WriteField("session_id", sessionID); err != nil {
			return fmt.Errorf("write session_id field: %w", err)
		}

		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(content); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}
		return nil
	}

	var resp entity.RAGIndexResponse
	err := pkgretry.Do(ctx, c.config.Retry, func() error {
		return c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.IndexEndpoint, prepareBody, &resp)
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to index resume", zap.Error(err))
		return nil, fmt.Errorf("index resume: %w", err)
	}

	ctxzap.Info(ctx, "resume indexed successfully", zap.Int("chunks_indexed", resp.ChunksIndexed))
	return &resp, nil
}

// GetContext retrieves resume context relevant to a query.
func (c *Connector) GetContext(ctx context.Context, req *entity.RAGGetContextRequest) (string, error) {
	ctxzap.Debug(ctx, "getting context from RAG service")

	var resp entity.RAGGetContextResponse
	err := pkgretry.Do(ctx, c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.ContextEndpoint, req, &resp)
	})
	if err != nil {
		return "", fmt.Errorf("get context: %w", err)
	}

	var texts []string
	for _, chunk := range resp.RelevantChunks {
		if chunk.Text != "" {
			texts = append(texts, chunk.Text)
		}
	}

	result := strings.Join(texts, "\n\n")
	ctxzap.Debug(ctx, "context retrieved",
		zap.Int("chunk_count", len(texts)),
		zap.Int("total_length", len(result)),
	)

	return result, nil
}
