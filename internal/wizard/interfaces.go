package wizard

import (
	"context"

	"github.com/resumesavvy/interview-agent/internal/entity"
)

// BackendConnector is the wizard's view of the interview-agent API.
type BackendConnector interface {
	BaseURL() string
	Extract(ctx context.Context, sessionID, filename string, content []byte) (*entity.ExtractResponse, error)
	GenerateQuestions(ctx context.Context, req *entity.QuestionsRequest) ([]string, error)
	SubmitAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error
	Evaluate(ctx context.Context, req *entity.EvaluateRequest) (*entity.EvaluateResponse, error)
	DownloadReport(ctx context.Context, req *entity.ReportRequest, format entity.ResultFormat) ([]byte, string, error)
}
