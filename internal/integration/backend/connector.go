package backend

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/integration/common"
	pkghttp "github.com/resumesavvy/interview-agent/pkg/http"
	"go.uber.org/zap"
)

// Fixed paths of the interview-agent API.
const (
	extractEndpoint   = "/extract"
	questionsEndpoint = "/questions/technical"
	answersEndpoint   = "/interview-session/%s/answers"
	evaluateEndpoint  = "/evaluate"
	reportEndpoint    = "/report"
)

// Connector is the wizard's client of the interview-agent backend. The wizard
// never retries on its own: every failure is surfaced and the user re-triggers
// the action.
type Connector struct {
	config    config.BackendConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.BackendConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// BaseURL exposes the backend base URL so the socket relay can derive its
// websocket address from it.
func (c *Connector) BaseURL() string {
	return c.connector.BaseURL()
}

// Extract uploads the resume for chunking and indexing under the session id.
func (c *Connector) Extract(ctx context.Context, sessionID, filename string, content []byte) (*entity.ExtractResponse, error) {
	ctxzap.Info(ctx, "uploading resume for extraction",
		zap.String("session_id", sessionID),
		zap.String("filename", filename),
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

	var resp entity.ExtractResponse
	if err := c.connector.DoMultipartRequest(ctx, http.MethodPost, extractEndpoint, prepareBody, &resp); err != nil {
		return nil, fmt.Errorf("extract resume: %w", err)
	}

	return &resp, nil
}

// GenerateQuestions requests the ordered technical question set for a session.
func (c *Connector) GenerateQuestions(ctx context.Context, req *entity.QuestionsRequest) ([]string, error) {
	ctxzap.Info(ctx, "requesting interview questions",
		zap.String("session_id", req.SessionID),
		zap.String("role", req.Role),
	)

	var resp entity.QuestionsResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, questionsEndpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	return resp.Questions, nil
}

// SubmitAnswers hands the completed answer sequence to the backend.
func (c *Connector) SubmitAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error {
	ctxzap.Info(ctx, "submitting answer sequence",
		zap.String("session_id", sessionID),
		zap.Int("count", len(answers)),
	)

	req := entity.SubmitAnswersRequest{Answers: answers}
	endpoint := fmt.Sprintf(answersEndpoint, sessionID)

	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, nil); err != nil {
		return fmt.Errorf("submit answers: %w", err)
	}
	return nil
}

// Evaluate asks the backend to score the submitted answers. The returned
// scores and feedback feed the report request.
func (c *Connector) Evaluate(ctx context.Context, req *entity.EvaluateRequest) (*entity.EvaluateResponse, error) {
	ctxzap.Info(ctx, "requesting answer evaluation",
		zap.String("session_id", req.SessionID),
		zap.Int("technical_answers", len(req.TechnicalAnswers)),
	)

	var resp entity.EvaluateResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, evaluateEndpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("evaluate answers: %w", err)
	}

	return &resp, nil
}

// DownloadReport fetches the rendered interview report in the given format.
func (c *Connector) DownloadReport(ctx context.Context, req *entity.ReportRequest, format entity.ResultFormat) ([]byte, string, error) {
	endpoint := fmt.Sprintf("%s?format=%s", reportEndpoint, format)

	data, contentType, err := c.connector.DoRawRequest(ctx, http.MethodPost, endpoint, req)
	if err != nil {
		return nil, "", fmt.Errorf("download report: %w", err)
	}
	return data, contentType, nil
}
