package interview

import (
	"context"

	"github.com/resumesavvy/interview-agent/internal/entity"
)

type InterviewUsecase interface {
	ExtractResume(ctx context.Context, sessionID, filename string, content []byte) (*entity.ExtractResponse, error)
	GenerateTechnicalQuestions(ctx context.Context, req *entity.QuestionsRequest) ([]string, error)
	GenerateHRQuestions(ctx context.Context, req *entity.HRQuestionsRequest) ([]string, error)
	SubmitAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	ListQuestions(ctx context.Context, sessionID string) ([]entity.Question, error)
	Evaluate(ctx context.Context, req *entity.EvaluateRequest) (*entity.EvaluateResponse, error)
}
