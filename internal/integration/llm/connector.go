package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/integration/common"
	pkgretry "github.com/resumesavvy/interview-agent/internal/pkg/retry"
	pkghttp "github.com/resumesavvy/interview-agent/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// GenerateQuestions generates the technical question set: count_role
// role-based questions followed by count_resume resume-based ones.
func (c *Connector) GenerateQuestions(ctx context.Context, req *entity.LLMQuestionsRequest) ([]string, error) {
	ctxzap.Info(ctx, "generating technical questions via LLM service",
		zap.String("role", req.Role),
		zap.Int("count_role", req.CountRole),
		zap.Int("count_resume", req.CountResume),
	)

	var resp entity.LLMQuestionsResponse
	err := pkgretry.Do(ctx, c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.QuestionsEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	ctxzap.Info(ctx, "questions generated successfully", zap.Int("count", len(resp.Questions)))
	return resp.Questions, nil
}

// GenerateHRQuestions generates behavioral questions grounded on resume context.
func (c *Connector) GenerateHRQuestions(ctx context.Context, req *entity.LLMHRQuestionsRequest) ([]string, error) {
	ctxzap.Info(ctx, "generating HR questions via LLM service", zap.Int("count", req.Count))

	var resp entity.LLMQuestionsResponse
	err := pkgretry.Do(ctx, c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.HRQuestionsEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("generate hr questions: %w", err)
	}

	ctxzap.Info(ctx, "hr questions generated successfully", zap.Int("count", len(resp.Questions)))
	return resp.Questions, nil
}

// EvaluateAnswers scores the collected answer sequences.
func (c *Connector) EvaluateAnswers(ctx context.Context, req *entity.LLMEvaluateRequest) (*entity.EvaluateResponse, error) {
	ctxzap.Info(ctx, "evaluating answers via LLM service",
		zap.Int("technical_answers", len(req.TechnicalAnswers)),
		zap.Int("hr_answers", len(req.HRAnswers)),
	)

	var resp entity.EvaluateResponse
	err := pkgretry.Do(ctx, c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.EvaluateEndpoint, req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate answers: %w", err)
	}

	ctxzap.Info(ctx, "answers evaluated successfully", zap.Float64("overall", resp.Overall))
	return &resp, nil
}
