package interview

import "github.com/resumesavvy/interview-agent/internal/entity"

type sessionDTO struct {
	ID            string  `json:"session_id"`
	Role          string  `json:"role,omitempty"`
	CandidateName *string `json:"candidate_name,omitempty"`
	Status        string  `json:"session_status"`
	ChunksIndexed int     `json:"chunks_indexed"`
	Error         *string `json:"error,omitempty"`
}

type questionDTO struct {
	Position int    `json:"position"`
	Kind     string `json:"type"`
	Text     string `json:"question"`
}

func toSessionDTO(session *entity.Session) sessionDTO {
	return sessionDTO{
		ID:            session.ID,
		Role:          session.Role,
		CandidateName: session.CandidateName,
		Status:        string(session.Status),
		ChunksIndexed: session.ChunksIndexed,
		Error:         session.Error,
	}
}

func toQuestionDTOs(questions []entity.Question) []questionDTO {
	out := make([]questionDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionDTO{
			Position: q.Position,
			Kind:     string(q.Kind),
			Text:     q.Text,
		})
	}
	return out
}
