package entity

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ExtractResponse is returned by POST /extract once the resume is indexed.
type ExtractResponse struct {
	SessionID     string         `json:"session_id"`
	ChunksIndexed int            `json:"chunks_indexed"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// QuestionsRequest parameterizes technical question generation: the first
// CountRole questions target the role, the remaining CountResume questions
// target the candidate's resume.
type QuestionsRequest struct {
	SessionID   string `json:"session_id"`
	Role        string `json:"role"`
	CountRole   int    `json:"count_role"`
	CountResume int    `json:"count_resume"`
}

type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

type HRQuestionsRequest struct {
	SessionID string `json:"session_id"`
	Count     int    `json:"count"`
}

// SubmitAnswersRequest carries the completed answer sequence of one interview step.
type SubmitAnswersRequest struct {
	Answers []Answer `json:"answers"`
}

type EvaluateRequest struct {
	SessionID        string   `json:"session_id"`
	Role             string   `json:"role"`
	TechnicalAnswers []Answer `json:"technical_answers"`
	HRAnswers        []Answer `json:"hr_answers"`
}

type EvaluateResponse struct {
	Overall        float64  `json:"overall"`
	TechnicalScore float64  `json:"technical_score"`
	HRScore        float64  `json:"hr_score"`
	RoleScore      float64  `json:"role_score"`
	ResumeScore    float64  `json:"resume_score"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
}

// ReportRequest carries the concise performance summary rendered into the
// downloadable interview report.
type ReportRequest struct {
	SessionID     string  `json:"session_id"`
	CandidateName string  `json:"candidate_name,omitempty"`
	Role          string  `json:"role,omitempty"`
	Overall       float64 `json:"overall,omitempty"`

	// Percentages per category
	TechnicalScore float64 `json:"technical_score,omitempty"`
	HRScore        float64 `json:"hr_score,omitempty"`
	RoleScore      float64 `json:"role_score,omitempty"`
	ResumeScore    float64 `json:"resume_score,omitempty"`

	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`

	// LLM-generated detailed feedback sections, preferred over the generic
	// strengths/improvements lists when present.
	TechnicalFeedback     []string `json:"technical_feedback,omitempty"`
	HRFeedback            []string `json:"hr_feedback,omitempty"`
	CommunicationFeedback []string `json:"communication_feedback,omitempty"`
	TipsToImprove         []string `json:"tips_to_improve,omitempty"`
}
