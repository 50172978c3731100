// Package wizard implements the candidate-facing interview flow: a resume
// upload step followed by a speech-driven Q&A step. Steps are chained through
// onNext/onBack callbacks; no step manages the flow itself.
package wizard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/resumesavvy/interview-agent/internal/capture"
	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"go.uber.org/zap"
)

// Wizard wires the upload and interview steps together and drives them from
// a terminal.
type Wizard struct {
	backend   BackendConnector
	transport capture.Transport
	cfg       config.InterviewConfig
	logger    *zap.Logger

	in  *bufio.Reader
	out io.Writer

	upload    *UploadStep
	interview *InterviewStep
	answers   []entity.Answer
}

func New(
	backend BackendConnector,
	transport capture.Transport,
	cfg config.InterviewConfig,
	logger *zap.Logger,
) *Wizard {
	w := &Wizard{
		backend:   backend,
		transport: transport,
		cfg:       cfg,
		logger:    logger,
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	w.interview = NewInterviewStep(backend, transport, cfg,
		func(answers []entity.Answer) { w.answers = answers },
		func() { fmt.Fprintln(w.out, "Already at the first question.") },
		logger,
	)
	w.upload = NewUploadStep(backend, func(UploadResult) {}, logger)

	return w
}

// Run executes the whole flow: upload the resume, answer every question, then
// submit the answer sequence, evaluate it, and fetch the scored report.
func (w *Wizard) Run(ctx context.Context, resumePath string, reportFormat entity.ResultFormat) error {
	if err := w.runUpload(ctx, resumePath); err != nil {
		return err
	}

	sessionID := w.upload.SessionID()

	fmt.Fprintln(w.out, w.interview.LoadingMessage())
	w.interview.Load(ctx, sessionID)

	if len(w.interview.Questions()) == 0 {
		fmt.Fprintln(w.out, "No questions available for this session.")
		return nil
	}

	if err := w.runInterview(ctx); err != nil {
		return err
	}

	if err := w.backend.SubmitAnswers(ctx, sessionID, w.answers); err != nil {
		return fmt.Errorf("submit answers: %w", err)
	}
	fmt.Fprintf(w.out, "Submitted %d answers.\n", len(w.answers))

	eval, err := w.backend.Evaluate(ctx, &entity.EvaluateRequest{
		SessionID:        sessionID,
		Role:             w.cfg.Role,
		TechnicalAnswers: w.answers,
	})
	if err != nil {
		return fmt.Errorf("evaluate answers: %w", err)
	}
	fmt.Fprintf(w.out, "Overall score: %.0f/100\n", eval.Overall)

	return w.downloadReport(ctx, sessionID, eval, reportFormat)
}

func (w *Wizard) runUpload(ctx context.Context, resumePath string) error {
	content, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(resumePath))
	if err := w.upload.SelectFile(ctx, filepath.Base(resumePath), contentType, content); err != nil {
		return err
	}

	fmt.Fprintln(w.out, w.upload.Status())
	if !w.upload.Submit() {
		return fmt.Errorf("upload incomplete, cannot continue")
	}
	return nil
}

func (w *Wizard) runInterview(ctx context.Context) error {
	total := len(w.interview.Questions())

	for w.answers == nil {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(w.out, "\nQuestion %d/%d: %s\n", w.interview.index+1, total, w.interview.CurrentQuestion())
		if draft := w.interview.Draft(); draft != "" {
			fmt.Fprintf(w.out, "Current answer: %s\n", draft)
		}
		fmt.Fprint(w.out, "[r]ecord/stop  [t]ype answer  [n]ext  [b]ack > ")

		line, err := w.in.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		switch strings.TrimSpace(strings.ToLower(line)) {
		case "r":
			if err := w.interview.ToggleRecording(ctx); err != nil {
				fmt.Fprintf(w.out, "Recording unavailable: %v\n", err)
			} else if w.interview.Recording() {
				fmt.Fprintln(w.out, "Recording... press r again to stop.")
			}
		case "t":
			fmt.Fprint(w.out, "Answer: ")
			text, err := w.in.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			w.interview.SetDraft(strings.TrimSpace(text))
		case "n":
			w.interview.Advance()
		case "b":
			w.interview.Retreat()
		}
	}

	return nil
}

func (w *Wizard) downloadReport(ctx context.Context, sessionID string, eval *entity.EvaluateResponse, format entity.ResultFormat) error {
	if !format.IsValid() {
		return nil
	}

	report, _, err := w.backend.DownloadReport(ctx, reportRequest(sessionID, w.cfg, eval), format)
	if err != nil {
		return fmt.Errorf("download report: %w", err)
	}

	name := fmt.Sprintf("interview-report-%s.%s", sessionID, reportExt(format))
	if err := os.WriteFile(name, report, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(w.out, "Report saved to %s\n", name)
	return nil
}

// reportRequest folds the evaluation scores and feedback into the report
// payload; without them the rendered report carries an empty score table.
func reportRequest(sessionID string, cfg config.InterviewConfig, eval *entity.EvaluateResponse) *entity.ReportRequest {
	return &entity.ReportRequest{
		SessionID:      sessionID,
		CandidateName:  cfg.CandidateName,
		Role:           cfg.Role,
		Overall:        eval.Overall,
		TechnicalScore: eval.TechnicalScore,
		HRScore:        eval.HRScore,
		RoleScore:      eval.RoleScore,
		ResumeScore:    eval.ResumeScore,
		Strengths:      eval.Strengths,
		Improvements:   eval.Improvements,
	}
}

func reportExt(format entity.ResultFormat) string {
	switch format {
	case entity.FormatPDF:
		return "pdf"
	case entity.FormatDOCX:
		return "docx"
	default:
		return "md"
	}
}
