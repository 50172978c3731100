package stt

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the websocket speech-to-text relay
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/ws/stt", h.Relay)
}
