package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/resumesavvy/interview-agent/internal/capture"
	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"go.uber.org/zap"
)

// InterviewStep asks the generated questions one at a time. For each question
// the candidate records a spoken answer (or types one); advancing tags the
// answer by its ordinal position and appends it to the sequence handed to the
// completion callback.
type InterviewStep struct {
	backend    BackendConnector
	transport  capture.Transport
	cfg        config.InterviewConfig
	onComplete func([]entity.Answer)
	onBack     func()
	logger     *zap.Logger

	mu         sync.Mutex
	sessionID  string
	questions  []string
	index      int
	answers    []entity.Answer
	drafts     map[int]string
	recorded   map[int]bool
	recording  bool
	transcript capture.Transcript
	captureErr error
	completed  bool
}

func NewInterviewStep(
	backend BackendConnector,
	transport capture.Transport,
	cfg config.InterviewConfig,
	onComplete func([]entity.Answer),
	onBack func(),
	logger *zap.Logger,
) *InterviewStep {
	return &InterviewStep{
		backend:    backend,
		transport:  transport,
		cfg:        cfg,
		onComplete: onComplete,
		onBack:     onBack,
		logger:     logger,
		drafts:     make(map[int]string),
		recorded:   make(map[int]bool),
	}
}

// LoadingMessage names the candidate and the requested question counts while
// the fetch is pending.
func (s *InterviewStep) LoadingMessage() string {
	return fmt.Sprintf("Preparing %d role and %d resume questions for %s (%s)...",
		s.cfg.CountRole, s.cfg.CountResume, s.cfg.CandidateName, s.cfg.Role)
}

// Load fetches the question set once. A failed or cancelled fetch leaves the
// list empty; the step degrades to "no questions" rather than retrying.
func (s *InterviewStep) Load(ctx context.Context, sessionID string) {
	questions, err := s.backend.GenerateQuestions(ctx, &entity.QuestionsRequest{
		SessionID:   sessionID,
		Role:        s.cfg.Role,
		CountRole:   s.cfg.CountRole,
		CountResume: s.cfg.CountResume,
	})
	if ctx.Err() != nil {
		// Torn down before the fetch resolved; discard whatever came back.
		return
	}
	if err != nil {
		s.logger.Error("question fetch failed", zap.Error(err))
		questions = nil
	}

	s.mu.Lock()
	s.sessionID = sessionID
	s.questions = questions
	s.mu.Unlock()

	s.logger.Info("questions loaded",
		zap.String("session_id", sessionID),
		zap.Int("count", len(questions)),
	)
}

// Questions returns the fetched question list.
func (s *InterviewStep) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions
}

// CurrentQuestion returns the prompt at the active index, empty when the
// list is exhausted or was never loaded.
func (s *InterviewStep) CurrentQuestion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < len(s.questions) {
		return s.questions[s.index]
	}
	return ""
}

// Recording reports whether a capture session is active.
func (s *InterviewStep) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// SetDraft stores manually typed answer text for the current question. It is
// used when the recording produced nothing.
func (s *InterviewStep) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[s.index] = text
}

// Draft returns the typed answer text for the current question.
func (s *InterviewStep) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[s.index]
}

// ToggleRecording starts or stops speech capture for the current question.
// A question that has already had its recording stopped cannot be recorded
// again; the toggle becomes a no-op for that index.
func (s *InterviewStep) ToggleRecording(ctx context.Context) error {
	s.mu.Lock()
	if s.recorded[s.index] {
		s.mu.Unlock()
		return nil
	}
	if s.recording {
		s.mu.Unlock()
		s.transport.Stop()
		return nil
	}
	s.transcript.Reset()
	s.captureErr = nil
	s.mu.Unlock()

	err := s.transport.Start(ctx, capture.Events{
		OnFragment: func(text string, final bool) {
			s.transcript.Apply(text, final)
		},
		OnError: func(err error) {
			s.mu.Lock()
			s.captureErr = err
			s.mu.Unlock()
			s.logger.Warn("speech capture error", zap.Error(err))
		},
		OnEnd: func() {
			s.mu.Lock()
			s.recording = false
			s.recorded[s.index] = true
			s.mu.Unlock()
		},
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.recording = true
	s.mu.Unlock()
	return nil
}

// CaptureError returns the last recording failure, if any.
func (s *InterviewStep) CaptureError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captureErr
}

// EffectiveAnswer is the text that would be committed right now: the captured
// transcript, or the typed draft when the transcript is empty.
func (s *InterviewStep) EffectiveAnswer() string {
	text := strings.TrimSpace(s.transcript.Effective())
	if text == "" {
		s.mu.Lock()
		text = strings.TrimSpace(s.drafts[s.index])
		s.mu.Unlock()
	}
	return text
}

// Advance commits the current answer and moves to the next question. Past the
// last question it hands the full sequence to the completion callback exactly
// once. Re-advancing over an index visited via Retreat replaces that entry
// instead of appending a duplicate.
func (s *InterviewStep) Advance() {
	if s.Recording() {
		s.transport.Stop()
	}

	text := s.EffectiveAnswer()

	s.mu.Lock()
	if s.completed || s.index >= len(s.questions) {
		s.mu.Unlock()
		return
	}

	answer := entity.Answer{
		Position: s.index,
		Question: s.questions[s.index],
		Text:     text,
		Kind:     entity.KindForPosition(s.index, s.cfg.CountRole),
	}
	if s.index < len(s.answers) {
		s.answers[s.index] = answer
	} else {
		s.answers = append(s.answers, answer)
	}
	s.recorded[s.index] = true

	if s.index+1 < len(s.questions) {
		s.index++
		s.transcript.Reset()
		s.mu.Unlock()
		return
	}

	s.completed = true
	answers := append([]entity.Answer{}, s.answers...)
	s.mu.Unlock()

	s.logger.Info("interview step completed", zap.Int("answers", len(answers)))
	s.onComplete(answers)
}

// Retreat steps back one question and restores its stored answer text as the
// editable draft. Committed answers are left untouched. On the first question
// it regresses the wizard instead.
func (s *InterviewStep) Retreat() {
	s.mu.Lock()
	if s.index == 0 {
		s.mu.Unlock()
		if s.onBack != nil {
			s.onBack()
		}
		return
	}

	s.index--
	if s.index < len(s.answers) {
		s.drafts[s.index] = s.answers[s.index].Text
	}
	s.transcript.Reset()
	s.mu.Unlock()
}
