package wizard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resumesavvy/interview-agent/internal/pkg/validator"
	"go.uber.org/zap"
)

// UploadResult is handed to the next step once the resume is accepted.
type UploadResult struct {
	SessionID     string
	ResumeContent []byte
}

// UploadStep validates a resume, generates the session identifier and sends
// the file to the extraction endpoint. Submission stays blocked until an
// extraction has produced a status line.
type UploadStep struct {
	backend BackendConnector
	onNext  func(UploadResult)
	logger  *zap.Logger

	sessionID  string
	content    []byte
	status     string
	processing bool
}

func NewUploadStep(backend BackendConnector, onNext func(UploadResult), logger *zap.Logger) *UploadStep {
	return &UploadStep{
		backend: backend,
		onNext:  onNext,
		logger:  logger,
	}
}

// SelectFile accepts a resume and runs extraction. Non-PDF files are rejected
// before any network call and leave the step untouched. Each attempt gets a
// fresh session identifier; a failed extraction keeps no partial state, so
// the same file can simply be reattempted.
func (s *UploadStep) SelectFile(ctx context.Context, filename, contentType string, content []byte) error {
	if err := validator.ValidateResumeContentType(contentType); err != nil {
		return err
	}

	sessionID := uuid.NewString()
	s.processing = true
	s.status = ""

	s.logger.Info("uploading resume",
		zap.String("session_id", sessionID),
		zap.String("filename", filename),
		zap.Int("size_bytes", len(content)),
	)

	resp, err := s.backend.Extract(ctx, sessionID, filename, content)
	if err != nil {
		s.processing = false
		s.logger.Error("resume extraction failed", zap.Error(err))
		return fmt.Errorf("resume extraction: %w", err)
	}

	s.sessionID = sessionID
	s.content = content
	s.status = fmt.Sprintf("Resume processed: %d sections indexed", resp.ChunksIndexed)
	s.processing = false

	s.logger.Info("resume extracted",
		zap.String("session_id", sessionID),
		zap.Int("chunks_indexed", resp.ChunksIndexed),
	)
	return nil
}

// Status is the human-readable extraction outcome, empty until success.
func (s *UploadStep) Status() string {
	return s.status
}

// Processing reports whether an extraction call is in flight.
func (s *UploadStep) Processing() bool {
	return s.processing
}

// CanSubmit is true once extraction has produced a status line.
func (s *UploadStep) CanSubmit() bool {
	return s.status != ""
}

// SessionID returns the identifier of the last successful upload.
func (s *UploadStep) SessionID() string {
	return s.sessionID
}

// Submit hands the session and resume content to the next step. It does
// nothing while submission is still blocked.
func (s *UploadStep) Submit() bool {
	if !s.CanSubmit() {
		return false
	}
	s.onNext(UploadResult{
		SessionID:     s.sessionID,
		ResumeContent: s.content,
	})
	return true
}
