package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/metrics"
	"github.com/resumesavvy/interview-agent/internal/pkg/formatter"
	"github.com/resumesavvy/interview-agent/internal/pkg/logger"
	"github.com/resumesavvy/interview-agent/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase       InterviewUsecase
	validator     *validator.Validator
	metrics       *metrics.Metrics
	maxUploadSize int64
}

func NewHandler(
	usecase InterviewUsecase,
	validator *validator.Validator,
	m *metrics.Metrics,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		usecase:       usecase,
		validator:     validator,
		metrics:       m,
		maxUploadSize: maxUploadSize,
	}
}

// Extract handles POST /extract - index an uploaded resume
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Extract")

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse form", err, "extract")
		return
	}

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "session_id is required", entity.ErrMissingField, "extract")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ctxzap.Error(ctx, "missing resume file", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "resume file is required", err, "extract")
		return
	}
	defer file.Close()

	if err := h.validator.ValidateResumeFile(header); err != nil {
		ctxzap.Error(ctx, "failed to validate resume file", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err, "extract")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read resume file", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "failed to read file", err, "extract")
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("filename", header.Filename),
		zap.Int64("size_bytes", header.Size),
	)
	ctxzap.Info(ctx, "extracting resume")

	resp, err := h.usecase.ExtractResume(ctx, sessionID, header.Filename, content)
	if err != nil {
		h.handleUsecaseError(ctx, w, err, "extract")
		return
	}

	ctxzap.Info(ctx, "resume extracted successfully",
		zap.Int("chunks_indexed", resp.ChunksIndexed),
	)
	h.respondJSON(w, http.StatusOK, resp)
}

// TechnicalQuestions handles POST /questions/technical - generate the technical set
func (h *Handler) TechnicalQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "TechnicalQuestions")

	var req entity.QuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err, "questions_technical")
		return
	}

	if err := h.validator.ValidateQuestionsRequest(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err, "questions_technical")
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("session_id", req.SessionID),
		zap.String("role", req.Role),
		zap.Int("count_role", req.CountRole),
		zap.Int("count_resume", req.CountResume),
	)
	ctxzap.Info(ctx, "generating technical questions")

	questions, err := h.usecase.GenerateTechnicalQuestions(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err, "questions_technical")
		return
	}

	ctxzap.Info(ctx, "technical questions generated", zap.Int("count", len(questions)))
	h.respondJSON(w, http.StatusOK, entity.QuestionsResponse{Questions: questions})
}

// HRQuestions handles POST /questions/hr - generate the behavioral set
func (h *Handler) HRQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "HRQuestions")

	var req entity.HRQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err, "questions_hr")
		return
	}

	if req.SessionID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "session_id is required", entity.ErrMissingField, "questions_hr")
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("session_id", req.SessionID),
		zap.Int("count", req.Count),
	)
	ctxzap.Info(ctx, "generating hr questions")

	questions, err := h.usecase.GenerateHRQuestions(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err, "questions_hr")
		return
	}

	ctxzap.Info(ctx, "hr questions generated", zap.Int("count", len(questions)))
	h.respondJSON(w, http.StatusOK, entity.QuestionsResponse{Questions: questions})
}

// SubmitAnswers handles POST /interview-session/{id}/answers - persist the answer sequence
func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "SubmitAnswers"),
	)

	var req entity.SubmitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err, "submit_answers")
		return
	}

	if err := h.validator.ValidateSubmitAnswers(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err, "submit_answers")
		return
	}

	ctxzap.Info(ctx, "submitting answers", zap.Int("count", len(req.Answers)))

	if err := h.usecase.SubmitAnswers(ctx, sessionID, req.Answers); err != nil {
		h.handleUsecaseError(ctx, w, err, "submit_answers")
		return
	}

	ctxzap.Info(ctx, "answers submitted successfully")
	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "answers saved",
	})
}

// GetSession handles GET /interview-session/{id} - Get session status
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "GetSession"),
	)

	ctxzap.Debug(ctx, "fetching session")

	session, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err, "get_session")
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionDTO(session))
}

// GetQuestions handles GET /interview-session/{id}/questions - List persisted questions
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "GetQuestions"),
	)

	questions, err := h.usecase.ListQuestions(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err, "get_questions")
		return
	}

	h.respondJSON(w, http.StatusOK, toQuestionDTOs(questions))
}

// Evaluate handles POST /evaluate - score the completed interview
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Evaluate")

	var req entity.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err, "evaluate")
		return
	}

	if req.SessionID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "session_id is required", entity.ErrMissingField, "evaluate")
		return
	}

	ctx = logger.AddFields(ctx, zap.String("session_id", req.SessionID))
	ctxzap.Info(ctx, "evaluating interview",
		zap.Int("technical_answers", len(req.TechnicalAnswers)),
		zap.Int("hr_answers", len(req.HRAnswers)),
	)

	result, err := h.usecase.Evaluate(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err, "evaluate")
		return
	}

	ctxzap.Info(ctx, "interview evaluated", zap.Float64("overall", result.Overall))
	h.respondJSON(w, http.StatusOK, result)
}

// Report handles POST /report?format= - render the downloadable report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Report")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = "markdown"
	}

	format := entity.ResultFormat(formatParam)
	if !format.IsValid() {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format parameter",
			fmt.Errorf("format must be one of: markdown, docx, pdf"), "report")
		return
	}

	var req entity.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err, "report")
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("session_id", req.SessionID),
		zap.String("format", string(format)),
	)
	ctxzap.Debug(ctx, "rendering report")

	factory := formatter.NewFactory()
	fmtr, err := factory.Create(format)
	if err != nil {
		ctxzap.Error(ctx, "format not implemented", zap.Error(err))
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err, "report")
		return
	}

	rendered, err := fmtr.Format(formatter.BuildReport(&req))
	if err != nil {
		ctxzap.Error(ctx, "failed to render report", zap.Error(err))
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to render report", err, "report")
		return
	}

	h.metrics.ReportsRendered.Inc()
	ctxzap.Info(ctx, "report rendered successfully", zap.Int("size_bytes", len(rendered)))

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"interview-report-%s%s\"", req.SessionID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(rendered)
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error, operation string) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.metrics.RequestErrors.WithLabelValues(operation).Inc()
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, entity.ErrSessionNotFound) || errors.Is(err, entity.ErrQuestionNotFound) || errors.Is(err, entity.ErrNoQuestions) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err, operation)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err, operation)
	} else if errors.Is(err, entity.ErrSessionNotReady) || errors.Is(err, entity.ErrSessionCompleted) || errors.Is(err, entity.ErrAnswersAlreadySaved) {
		h.respondError(ctx, w, http.StatusConflict, "invalid session state", err, operation)
	} else if errors.Is(err, entity.ErrNotPDF) || errors.Is(err, entity.ErrInvalidExtension) || errors.Is(err, entity.ErrFileTooLarge) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid file", err, operation)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err, operation)
	}
}
