package interview

import (
	"context"

	"github.com/resumesavvy/interview-agent/internal/entity"
)

type RAGConnector interface {
	IndexResume(ctx context.Context, sessionID, filename string, content []byte) (*entity.RAGIndexResponse, error)
	GetContext(ctx context.Context, req *entity.RAGGetContextRequest) (string, error)
}

type LLMConnector interface {
	GenerateQuestions(ctx context.Context, req *entity.LLMQuestionsRequest) ([]string, error)
	GenerateHRQuestions(ctx context.Context, req *entity.LLMHRQuestionsRequest) ([]string, error)
	EvaluateAnswers(ctx context.Context, req *entity.LLMEvaluateRequest) (*entity.EvaluateResponse, error)
}

type ASRConnector interface {
	TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error)
}
