package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/metrics"
	"github.com/resumesavvy/interview-agent/internal/repository"
	"go.uber.org/zap"
)

const (
	maxContextChunks   = 8
	maxHRContextChunks = 6
)

// Usecase implements the interview orchestration logic: resume extraction,
// question generation, answer intake, evaluation and transcription.
type Usecase struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	ragConnector RAGConnector
	llmConnector LLMConnector
	asrConnector ASRConnector
	// extractCache holds the chunk count of recently indexed sessions so the
	// question-generation path can size its context query without a DB read.
	extractCache *gocache.Cache
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewUsecase(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	ragConnector RAGConnector,
	llmConnector LLMConnector,
	asrConnector ASRConnector,
	cacheTTL, cacheSweep time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		ragConnector: ragConnector,
		llmConnector: llmConnector,
		asrConnector: asrConnector,
		extractCache: gocache.New(cacheTTL, cacheSweep),
		metrics:      m,
		logger:       logger,
	}
}

// ExtractResume indexes the uploaded resume for the given client-generated
// session id. The session row is created on first contact; a repeated upload
// re-indexes under the same id (retry after failure keeps no partial state).
func (uc *Usecase) ExtractResume(ctx context.Context, sessionID, filename string, content []byte) (*entity.ExtractResponse, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, sessionID)
	if errors.Is(err, entity.ErrSessionNotFound) {
		session, err = uc.sessionRepo.CreateSession(ctx, entity.Session{
			ID:     sessionID,
			Status: entity.SessionStatusNew,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("get or create session: %w", err)
	}

	if _, err := uc.sessionRepo.UpdateSessionStatus(ctx, session.ID, entity.SessionStatusProcessing); err != nil {
		return nil, fmt.Errorf("mark session processing: %w", err)
	}

	indexed, err := uc.ragConnector.IndexResume(ctx, sessionID, filename, content)
	if err != nil {
		if _, uerr := uc.sessionRepo.UpdateSessionError(ctx, sessionID, err.Error()); uerr != nil {
			ctxzap.Warn(ctx, "failed to record session error", zap.Error(uerr))
		}
		return nil, err
	}

	if _, err := uc.sessionRepo.UpdateSessionIndexed(ctx, sessionID, indexed.ChunksIndexed); err != nil {
		return nil, fmt.Errorf("record indexed chunks: %w", err)
	}

	uc.extractCache.Set(sessionID, indexed.ChunksIndexed, gocache.DefaultExpiration)
	uc.metrics.ResumesIndexed.Inc()

	ctxzap.Info(ctx, "resume extracted and indexed",
		zap.String("session_id", sessionID),
		zap.Int("chunks_indexed", indexed.ChunksIndexed),
	)

	return &entity.ExtractResponse{
		SessionID:     sessionID,
		ChunksIndexed: indexed.ChunksIndexed,
		Metadata:      indexed.Metadata,
	}, nil
}

// GenerateTechnicalQuestions produces the ordered technical question set:
// count_role role-based questions followed by count_resume resume-based ones.
// The set is persisted so the interview can be resumed or audited later.
func (uc *Usecase) GenerateTechnicalQuestions(ctx context.Context, req *entity.QuestionsRequest) ([]string, error) {
	session, err := uc.sessionRepo.GetSessionByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.ChunksIndexed == 0 {
		return nil, entity.ErrSessionNotReady
	}

	resumeContext, err := uc.resumeContext(ctx, req.SessionID,
		fmt.Sprintf("Key achievements and projects for %s", req.Role), maxContextChunks)
	if err != nil {
		ctxzap.Warn(ctx, "resume context unavailable, generating without it", zap.Error(err))
	}

	questions, err := uc.llmConnector.GenerateQuestions(ctx, &entity.LLMQuestionsRequest{
		SessionID:   req.SessionID,
		Role:        req.Role,
		CountRole:   req.CountRole,
		CountResume: req.CountResume,
		Context:     resumeContext,
	})
	if err != nil {
		return nil, err
	}

	stored := make([]entity.Question, 0, len(questions))
	for i, text := range questions {
		stored = append(stored, entity.Question{
			SessionID: req.SessionID,
			Position:  i,
			Kind:      entity.KindForPosition(i, req.CountRole),
			Text:      text,
		})
	}
	if err := uc.questionRepo.ReplaceQuestions(ctx, req.SessionID, stored); err != nil {
		return nil, fmt.Errorf("persist questions: %w", err)
	}

	if _, err := uc.sessionRepo.UpdateSessionRole(ctx, req.SessionID, req.Role); err != nil {
		return nil, fmt.Errorf("update session role: %w", err)
	}
	if _, err := uc.sessionRepo.UpdateSessionStatus(ctx, req.SessionID, entity.SessionStatusInterviewing); err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}

	uc.metrics.QuestionsGenerated.Add(float64(len(questions)))
	return questions, nil
}

// GenerateHRQuestions produces behavioral questions from the resume context.
func (uc *Usecase) GenerateHRQuestions(ctx context.Context, req *entity.HRQuestionsRequest) ([]string, error) {
	if _, err := uc.sessionRepo.GetSessionByID(ctx, req.SessionID); err != nil {
		return nil, err
	}

	resumeContext, err := uc.resumeContext(ctx, req.SessionID,
		"behavioral strengths and culture fit", maxHRContextChunks)
	if err != nil {
		ctxzap.Warn(ctx, "resume context unavailable, generating without it", zap.Error(err))
	}

	questions, err := uc.llmConnector.GenerateHRQuestions(ctx, &entity.LLMHRQuestionsRequest{
		SessionID: req.SessionID,
		Count:     req.Count,
		Context:   resumeContext,
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.QuestionsGenerated.Add(float64(len(questions)))
	return questions, nil
}

// SubmitAnswers persists the completed answer sequence exactly once.
func (uc *Usecase) SubmitAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error {
	if _, err := uc.sessionRepo.GetSessionByID(ctx, sessionID); err != nil {
		return err
	}

	exists, err := uc.answerRepo.HasAnswers(ctx, sessionID)
	if err != nil {
		return err
	}
	if exists {
		return entity.ErrAnswersAlreadySaved
	}

	now := time.Now().UTC()
	for i := range answers {
		answers[i].SessionID = sessionID
		answers[i].Position = i
		if answers[i].AnsweredAt == nil {
			answers[i].AnsweredAt = &now
		}
	}

	if err := uc.answerRepo.SaveAnswers(ctx, sessionID, answers); err != nil {
		return err
	}
	if _, err := uc.sessionRepo.UpdateSessionStatus(ctx, sessionID, entity.SessionStatusCompleted); err != nil {
		return fmt.Errorf("update session status: %w", err)
	}

	uc.metrics.AnswersSubmitted.Add(float64(len(answers)))
	ctxzap.Info(ctx, "answer sequence persisted",
		zap.String("session_id", sessionID),
		zap.Int("count", len(answers)),
	)
	return nil
}

// GetSession returns the current session state.
func (uc *Usecase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	return uc.sessionRepo.GetSessionByID(ctx, sessionID)
}

// ListQuestions returns the persisted question set of a session.
func (uc *Usecase) ListQuestions(ctx context.Context, sessionID string) ([]entity.Question, error) {
	return uc.questionRepo.ListQuestions(ctx, sessionID)
}

// Evaluate scores the collected answers via the LLM service.
func (uc *Usecase) Evaluate(ctx context.Context, req *entity.EvaluateRequest) (*entity.EvaluateResponse, error) {
	if _, err := uc.sessionRepo.GetSessionByID(ctx, req.SessionID); err != nil {
		return nil, err
	}

	return uc.llmConnector.EvaluateAnswers(ctx, &entity.LLMEvaluateRequest{
		SessionID:        req.SessionID,
		Role:             req.Role,
		TechnicalAnswers: req.TechnicalAnswers,
		HRAnswers:        req.HRAnswers,
	})
}

// Transcribe forwards recorded audio to the ASR service.
func (uc *Usecase) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	transcript, err := uc.asrConnector.TranscribeBytes(ctx, audio, filename)
	if err != nil {
		return "", err
	}
	uc.metrics.Transcriptions.Inc()
	return transcript, nil
}

func (uc *Usecase) resumeContext(ctx context.Context, sessionID, query string, maxChunks int) (string, error) {
	topK := maxChunks
	if cached, ok := uc.extractCache.Get(sessionID); ok {
		if chunks, ok := cached.(int); ok && chunks < topK {
			topK = chunks
		}
	}

	return uc.ragConnector.GetContext(ctx, &entity.RAGGetContextRequest{
		SessionID: sessionID,
		Query:     query,
		TopK:      topK,
	})
}
