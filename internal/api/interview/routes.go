package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/extract", h.Extract)
	r.Post("/evaluate", h.Evaluate)
	r.Post("/report", h.Report)

	r.Route("/questions", func(r chi.Router) {
		r.Post("/technical", h.TechnicalQuestions)
		r.Post("/hr", h.HRQuestions)
	})

	r.Route("/interview-session", func(r chi.Router) {
		r.Get("/{id}", h.GetSession)
		r.Get("/{id}/questions", h.GetQuestions)
		r.Post("/{id}/answers", h.SubmitAnswers)
	})
}
