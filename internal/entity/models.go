package entity

import (
	"fmt"
	"time"
)

type SessionStatus string

// Session status represents the current state of the candidate interview workflow
const (
	SessionStatusNew          SessionStatus = "NEW"          // Session created, resume not indexed yet
	SessionStatusProcessing   SessionStatus = "PROCESSING"   // Resume extraction/indexing in progress
	SessionStatusReady        SessionStatus = "READY"        // Resume indexed, questions can be generated
	SessionStatusInterviewing SessionStatus = "INTERVIEWING" // Questions generated, answers being collected
	SessionStatusCompleted    SessionStatus = "COMPLETED"    // Full answer sequence submitted
	SessionStatusError        SessionStatus = "ERROR"        // Session failed with error
)

// QuestionKind tags a question by its origin: generated from the target role,
// from the candidate's resume, or from the behavioral (HR) template set.
type QuestionKind string

const (
	QuestionKindRole   QuestionKind = "role"
	QuestionKindResume QuestionKind = "resume"
	QuestionKindHR     QuestionKind = "hr"
)

func (k QuestionKind) Validate() error {
	switch k {
	case QuestionKindRole, QuestionKindResume, QuestionKindHR:
		return nil
	default:
		return fmt.Errorf("unknown question kind: %s", k)
	}
}

// KindForPosition derives the source tag of a technical question from its
// ordinal position: the first countRole questions are role-based, the rest
// are resume-based.
func KindForPosition(position, countRole int) QuestionKind {
	if position < countRole {
		return QuestionKindRole
	}
	return QuestionKindResume
}

type Session struct {
	ID            string        `json:"session_id"`
	Role          string        `json:"role"`
	CandidateName *string       `json:"candidate_name,omitempty"`
	Status        SessionStatus `json:"session_status"`
	ChunksIndexed int           `json:"chunks_indexed"`
	Error         *string       `json:"error,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Question struct {
	ID        string       `json:"id"`
	SessionID string       `json:"session_id"`
	Position  int          `json:"position"`
	Kind      QuestionKind `json:"kind"`
	Text      string       `json:"question"`
	CreatedAt time.Time    `json:"created_at"`
}

// Answer pairs a question with the candidate's transcribed (or typed) reply.
type Answer struct {
	ID         string       `json:"id,omitempty"`
	SessionID  string       `json:"session_id,omitempty"`
	Position   int          `json:"position"`
	Question   string       `json:"question"`
	Text       string       `json:"answer"`
	Kind       QuestionKind `json:"type"`
	CreatedAt  time.Time    `json:"created_at,omitempty"`
	AnsweredAt *time.Time   `json:"answered_at,omitempty"`
}
