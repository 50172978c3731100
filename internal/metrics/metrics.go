package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes counters for the interview pipeline. Each instance owns its
// registry, so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	ResumesIndexed     prometheus.Counter
	QuestionsGenerated prometheus.Counter
	AnswersSubmitted   prometheus.Counter
	Transcriptions     prometheus.Counter
	RelaySessions      prometheus.Counter
	ReportsRendered    prometheus.Counter
	RequestErrors      *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ResumesIndexed: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_resumes_indexed_total",
			Help: "Number of resumes successfully extracted and indexed.",
		}),
		QuestionsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_questions_generated_total",
			Help: "Number of questions generated across all sessions.",
		}),
		AnswersSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_answers_submitted_total",
			Help: "Number of answers persisted across all sessions.",
		}),
		Transcriptions: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_transcriptions_total",
			Help: "Number of completed speech-to-text transcriptions.",
		}),
		RelaySessions: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_stt_relay_sessions_total",
			Help: "Number of websocket STT relay sessions served.",
		}),
		ReportsRendered: factory.NewCounter(prometheus.CounterOpts{
			Name: "interview_reports_rendered_total",
			Help: "Number of interview reports rendered.",
		}),
		RequestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_request_errors_total",
			Help: "Number of failed API requests by operation.",
		}, []string{"operation"}),
	}
}

// Handler serves the prometheus scrape endpoint for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
