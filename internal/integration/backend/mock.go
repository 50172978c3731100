package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/resumesavvy/interview-agent/internal/entity"
)

// MockConnector fakes the backend for wizard tests. It records call counts so
// tests can assert that no network call was attempted.
type MockConnector struct {
	mu sync.Mutex

	ExtractCalls   int
	QuestionsCalls int
	AnswersCalls   int
	EvaluateCalls  int

	Questions  []string
	Submitted  [][]entity.Answer
	Evaluation entity.EvaluateResponse
	Evaluated  *entity.EvaluateRequest
	ReportReq  *entity.ReportRequest
	FailCalls  bool
	ChunkCount int
}

func NewMockConnector() *MockConnector {
	return &MockConnector{ChunkCount: 12}
}

func (m *MockConnector) BaseURL() string {
	return "http://127.0.0.1:8000"
}

func (m *MockConnector) Extract(ctx context.Context, sessionID, filename string, content []byte) (*entity.ExtractResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExtractCalls++

	if m.FailCalls {
		return nil, fmt.Errorf("extract resume: mock failure")
	}
	return &entity.ExtractResponse{
		SessionID:     sessionID,
		ChunksIndexed: m.ChunkCount,
	}, nil
}

func (m *MockConnector) GenerateQuestions(ctx context.Context, req *entity.QuestionsRequest) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsCalls++

	if m.FailCalls {
		return nil, fmt.Errorf("generate questions: mock failure")
	}
	return m.Questions, nil
}

func (m *MockConnector) SubmitAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersCalls++

	if m.FailCalls {
		return fmt.Errorf("submit answers: mock failure")
	}
	m.Submitted = append(m.Submitted, answers)
	return nil
}

func (m *MockConnector) Evaluate(ctx context.Context, req *entity.EvaluateRequest) (*entity.EvaluateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EvaluateCalls++

	if m.FailCalls {
		return nil, fmt.Errorf("evaluate answers: mock failure")
	}
	m.Evaluated = req
	resp := m.Evaluation
	return &resp, nil
}

func (m *MockConnector) DownloadReport(ctx context.Context, req *entity.ReportRequest, format entity.ResultFormat) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCalls {
		return nil, "", fmt.Errorf("download report: mock failure")
	}
	m.ReportReq = req
	return []byte("# report"), "text/markdown; charset=utf-8", nil
}
