package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
)

// Validator validates uploads and API requests.
type Validator struct {
	cfg config.FileUploadConfig
}

func NewFileValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateResumeFile accepts a resume upload only when its declared type
// indicates PDF content. No other state is touched on rejection.
func (v *Validator) ValidateResumeFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	contentType := file.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !strings.Contains(strings.ToLower(contentType), "pdf") && ext != ".pdf" {
		return fmt.Errorf("%w: got %q", entity.ErrNotPDF, contentType)
	}

	if file.Size > v.cfg.MaxResumeSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxResumeSize)
	}

	return nil
}

// ValidateResumeContentType is the client-side counterpart of
// ValidateResumeFile, used before any network call is attempted.
func ValidateResumeContentType(contentType string) error {
	if !strings.Contains(strings.ToLower(contentType), "pdf") {
		return fmt.Errorf("%w: got %q", entity.ErrNotPDF, contentType)
	}
	return nil
}

// ValidateAudioChunk bounds the size of a single relayed audio chunk.
func (v *Validator) ValidateAudioChunk(size int64) error {
	if size > v.cfg.MaxAudioChunkSize {
		return fmt.Errorf("%w: audio chunk is %d bytes (max %d)", entity.ErrFileTooLarge, size, v.cfg.MaxAudioChunkSize)
	}
	return nil
}

// ValidateQuestionsRequest validates technical question generation parameters.
func (v *Validator) ValidateQuestionsRequest(req *entity.QuestionsRequest) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: session_id", entity.ErrMissingField)
	}
	if req.CountRole < 0 || req.CountResume < 0 {
		return fmt.Errorf("%w: question counts must not be negative", entity.ErrInvalidParameter)
	}
	if req.CountRole+req.CountResume == 0 {
		return fmt.Errorf("%w: at least one question must be requested", entity.ErrInvalidParameter)
	}
	return nil
}

// ValidateSubmitAnswers validates the completed answer sequence.
func (v *Validator) ValidateSubmitAnswers(req *entity.SubmitAnswersRequest) error {
	if len(req.Answers) == 0 {
		return fmt.Errorf("%w: answers", entity.ErrMissingField)
	}
	for i, a := range req.Answers {
		if a.Question == "" {
			return fmt.Errorf("%w: answers[%d].question", entity.ErrMissingField, i)
		}
		if err := a.Kind.Validate(); err != nil {
			return fmt.Errorf("answers[%d]: %w", i, err)
		}
	}
	return nil
}
