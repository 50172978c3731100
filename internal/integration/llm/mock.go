package llm

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"go.uber.org/zap"
)

// MockConnector fakes the LLM service for local runs and tests.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

var mockRoleQuestions = []string{
	"Explain the difference between a process and a thread.",
	"What happens internally when you hit an API endpoint?",
	"How does a REST API differ from a SOAP API?",
	"What is referential integrity in databases?",
	"How does the browser rendering pipeline work?",
	"What is event-driven architecture?",
	"Explain ACID properties with an example.",
}

func (m *MockConnector) GenerateQuestions(ctx context.Context, req *entity.LLMQuestionsRequest) ([]string, error) {
	ctxzap.Info(ctx, "[MOCK] generating technical questions",
		zap.String("role", req.Role),
		zap.Int("count_role", req.CountRole),
		zap.Int("count_resume", req.CountResume),
	)

	questions := make([]string, 0, req.CountRole+req.CountResume)
	for i := 0; i < req.CountRole; i++ {
		questions = append(questions, mockRoleQuestions[i%len(mockRoleQuestions)])
	}
	for i := 0; i < req.CountResume; i++ {
		questions = append(questions, fmt.Sprintf("Tell me more about project %d mentioned in your resume.", i+1))
	}
	return questions, nil
}

func (m *MockConnector) GenerateHRQuestions(ctx context.Context, req *entity.LLMHRQuestionsRequest) ([]string, error) {
	ctxzap.Info(ctx, "[MOCK] generating HR questions", zap.Int("count", req.Count))

	questions := make([]string, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		questions = append(questions, fmt.Sprintf("Describe a situation where you demonstrated value %d of our culture.", i+1))
	}
	return questions, nil
}

func (m *MockConnector) EvaluateAnswers(ctx context.Context, req *entity.LLMEvaluateRequest) (*entity.EvaluateResponse, error) {
	ctxzap.Info(ctx, "[MOCK] evaluating answers",
		zap.Int("technical_answers", len(req.TechnicalAnswers)),
		zap.Int("hr_answers", len(req.HRAnswers)),
	)

	return &entity.EvaluateResponse{
		Overall:        72.5,
		TechnicalScore: 70,
		HRScore:        75,
		RoleScore:      68,
		ResumeScore:    72,
		Strengths:      []string{"Clear explanations of core concepts", "Concrete project examples"},
		Improvements:   []string{"Deeper database fundamentals", "More structured answers"},
	}, nil
}
