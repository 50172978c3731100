package entity

import "errors"

// Domain errors
var (
	// Resume/file errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrNotPDF           = errors.New("file type does not indicate PDF content")

	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotReady     = errors.New("resume has not been indexed for this session")
	ErrSessionCompleted    = errors.New("session is already completed")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrNoQuestions         = errors.New("no questions generated for session")
	ErrAnswersAlreadySaved = errors.New("answer sequence already submitted")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
