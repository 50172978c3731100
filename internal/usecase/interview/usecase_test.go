package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/integration/asr"
	"github.com/resumesavvy/interview-agent/internal/integration/llm"
	"github.com/resumesavvy/interview-agent/internal/integration/rag"
	"github.com/resumesavvy/interview-agent/internal/metrics"
	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

type memSessionRepo struct {
	sessions map[string]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *memSessionRepo) CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error) {
	session.CreatedAt = time.Now().UTC()
	session.UpdatedAt = session.CreatedAt
	r.sessions[session.ID] = &session
	return &session, nil
}

func (r *memSessionRepo) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) update(id string, fn func(*entity.Session)) (*entity.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	fn(session)
	session.UpdatedAt = time.Now().UTC()
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) UpdateSessionStatus(ctx context.Context, id string, status entity.SessionStatus) (*entity.Session, error) {
	return r.update(id, func(s *entity.Session) { s.Status = status })
}

func (r *memSessionRepo) UpdateSessionIndexed(ctx context.Context, id string, chunksIndexed int) (*entity.Session, error) {
	return r.update(id, func(s *entity.Session) {
		s.ChunksIndexed = chunksIndexed
		s.Status = entity.SessionStatusReady
	})
}

func (r *memSessionRepo) UpdateSessionRole(ctx context.Context, id, role string) (*entity.Session, error) {
	return r.update(id, func(s *entity.Session) { s.Role = role })
}

func (r *memSessionRepo) UpdateSessionError(ctx context.Context, id, errMsg string) (*entity.Session, error) {
	return r.update(id, func(s *entity.Session) {
		s.Error = &errMsg
		s.Status = entity.SessionStatusError
	})
}

func (r *memSessionRepo) DeleteSession(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

type memQuestionRepo struct {
	questions map[string][]entity.Question
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{questions: make(map[string][]entity.Question)}
}

func (r *memQuestionRepo) ReplaceQuestions(ctx context.Context, sessionID string, questions []entity.Question) error {
	r.questions[sessionID] = questions
	return nil
}

func (r *memQuestionRepo) ListQuestions(ctx context.Context, sessionID string) ([]entity.Question, error) {
	return r.questions[sessionID], nil
}

type memAnswerRepo struct {
	answers map[string][]entity.Answer
}

func newMemAnswerRepo() *memAnswerRepo {
	return &memAnswerRepo{answers: make(map[string][]entity.Answer)}
}

func (r *memAnswerRepo) SaveAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error {
	r.answers[sessionID] = answers
	return nil
}

func (r *memAnswerRepo) ListAnswers(ctx context.Context, sessionID string) ([]entity.Answer, error) {
	return r.answers[sessionID], nil
}

func (r *memAnswerRepo) HasAnswers(ctx context.Context, sessionID string) (bool, error) {
	return len(r.answers[sessionID]) > 0, nil
}

func newTestUsecase() (*Usecase, *memSessionRepo, *memAnswerRepo) {
	logger := zap.NewNop()
	sessions := newMemSessionRepo()
	answers := newMemAnswerRepo()
	uc := NewUsecase(
		sessions,
		newMemQuestionRepo(),
		answers,
		rag.NewMockConnector(logger),
		llm.NewMockConnector(logger),
		asr.NewMockConnector(logger),
		time.Minute, time.Minute,
		metrics.New(),
		logger,
	)
	return uc, sessions, answers
}

func TestExtractResume(t *testing.T) {
	convey.Convey("Given the interview usecase", t, func() {
		uc, sessions, _ := newTestUsecase()
		ctx := context.Background()
		content := []byte("%PDF-1.7 resume body")

		convey.Convey("When a resume arrives for an unknown session id", func() {
			resp, err := uc.ExtractResume(ctx, "session-1", "cv.pdf", content)

			convey.Convey("Then the session is created on first contact and indexed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(resp.SessionID, convey.ShouldEqual, "session-1")
				convey.So(resp.ChunksIndexed, convey.ShouldBeGreaterThan, 0)

				session, err := sessions.GetSessionByID(ctx, "session-1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(session.Status, convey.ShouldEqual, entity.SessionStatusReady)
				convey.So(session.ChunksIndexed, convey.ShouldEqual, resp.ChunksIndexed)
			})

			convey.Convey("And a repeated upload re-indexes under the same id", func() {
				again, err := uc.ExtractResume(ctx, "session-1", "cv.pdf", content)
				convey.So(err, convey.ShouldBeNil)
				convey.So(again.SessionID, convey.ShouldEqual, "session-1")
			})
		})
	})
}

func TestGenerateTechnicalQuestions(t *testing.T) {
	convey.Convey("Given the interview usecase", t, func() {
		uc, _, _ := newTestUsecase()
		ctx := context.Background()

		req := &entity.QuestionsRequest{
			SessionID:   "session-1",
			Role:        "Full Stack Developer",
			CountRole:   2,
			CountResume: 3,
		}

		convey.Convey("When the session does not exist", func() {
			_, err := uc.GenerateTechnicalQuestions(ctx, req)
			convey.So(errors.Is(err, entity.ErrSessionNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("When the resume has not been indexed", func() {
			uc.sessionRepo.CreateSession(ctx, entity.Session{ID: "session-1", Status: entity.SessionStatusNew})

			_, err := uc.GenerateTechnicalQuestions(ctx, req)
			convey.So(errors.Is(err, entity.ErrSessionNotReady), convey.ShouldBeTrue)
		})

		convey.Convey("When the session is ready", func() {
			_, err := uc.ExtractResume(ctx, "session-1", "cv.pdf", []byte("resume"))
			convey.So(err, convey.ShouldBeNil)

			questions, err := uc.GenerateTechnicalQuestions(ctx, req)

			convey.Convey("Then questions are generated and persisted with position tags", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(questions, convey.ShouldNotBeEmpty)

				stored, err := uc.ListQuestions(ctx, "session-1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(stored, convey.ShouldHaveLength, len(questions))
				convey.So(stored[0].Kind, convey.ShouldEqual, entity.QuestionKindRole)
				convey.So(stored[len(stored)-1].Kind, convey.ShouldEqual, entity.QuestionKindResume)
			})

			convey.Convey("Then the session moves to interviewing with the role recorded", func() {
				convey.So(err, convey.ShouldBeNil)
				session, err := uc.GetSession(ctx, "session-1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(session.Status, convey.ShouldEqual, entity.SessionStatusInterviewing)
				convey.So(session.Role, convey.ShouldEqual, "Full Stack Developer")
			})
		})
	})
}

func TestSubmitAnswers(t *testing.T) {
	convey.Convey("Given a ready session", t, func() {
		uc, _, answerRepo := newTestUsecase()
		ctx := context.Background()

		_, err := uc.ExtractResume(ctx, "session-1", "cv.pdf", []byte("resume"))
		convey.So(err, convey.ShouldBeNil)

		answers := []entity.Answer{
			{Question: "Q1", Text: "A1", Kind: entity.QuestionKindRole},
			{Question: "Q2", Text: "A2", Kind: entity.QuestionKindResume},
		}

		convey.Convey("When the answer sequence is submitted", func() {
			err := uc.SubmitAnswers(ctx, "session-1", answers)

			convey.Convey("Then it is persisted with positions and the session completes", func() {
				convey.So(err, convey.ShouldBeNil)

				saved, _ := answerRepo.ListAnswers(ctx, "session-1")
				convey.So(saved, convey.ShouldHaveLength, 2)
				convey.So(saved[0].Position, convey.ShouldEqual, 0)
				convey.So(saved[1].Position, convey.ShouldEqual, 1)
				convey.So(saved[1].SessionID, convey.ShouldEqual, "session-1")

				session, _ := uc.GetSession(ctx, "session-1")
				convey.So(session.Status, convey.ShouldEqual, entity.SessionStatusCompleted)
			})

			convey.Convey("And a second submission is rejected", func() {
				err := uc.SubmitAnswers(ctx, "session-1", answers)
				convey.So(errors.Is(err, entity.ErrAnswersAlreadySaved), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the session is unknown", func() {
			err := uc.SubmitAnswers(ctx, "nope", answers)
			convey.So(errors.Is(err, entity.ErrSessionNotFound), convey.ShouldBeTrue)
		})
	})
}

func TestTranscribe(t *testing.T) {
	convey.Convey("Given the interview usecase", t, func() {
		uc, _, _ := newTestUsecase()

		transcript, err := uc.Transcribe(context.Background(), []byte("audio"), "stream.webm")
		convey.So(err, convey.ShouldBeNil)
		convey.So(transcript, convey.ShouldNotBeEmpty)
	})
}
