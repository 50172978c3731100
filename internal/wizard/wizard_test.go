package wizard

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/integration/backend"
	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

func TestWizardRun(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatal(err)
		}
	})

	resumePath := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(resumePath, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	convey.Convey("Given a wizard over a scripted terminal", t, func() {
		mock := backend.NewMockConnector()
		mock.Questions = []string{"What is a goroutine?"}
		mock.Evaluation = entity.EvaluateResponse{
			Overall:        80,
			TechnicalScore: 75,
			RoleScore:      80,
			ResumeScore:    70,
			Strengths:      []string{"clear explanations"},
			Improvements:   []string{"more depth on concurrency"},
		}

		cfg := config.InterviewConfig{
			CandidateName: "Alex",
			Role:          "Full Stack Developer",
			CountRole:     1,
		}

		w := New(mock, &fakeTransport{}, cfg, zap.NewNop())
		w.in = bufio.NewReader(strings.NewReader("t\nChannels plus a scheduler.\nn\n"))
		out := &bytes.Buffer{}
		w.out = out

		convey.Convey("When the full flow runs", func() {
			err := w.Run(context.Background(), resumePath, entity.FormatMarkdown)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the answers are submitted and evaluated", func() {
				convey.So(mock.AnswersCalls, convey.ShouldEqual, 1)
				convey.So(mock.EvaluateCalls, convey.ShouldEqual, 1)
				convey.So(mock.Evaluated.TechnicalAnswers, convey.ShouldHaveLength, 1)
				convey.So(mock.Evaluated.TechnicalAnswers[0].Text, convey.ShouldEqual, "Channels plus a scheduler.")
				convey.So(mock.Evaluated.Role, convey.ShouldEqual, "Full Stack Developer")
				convey.So(out.String(), convey.ShouldContainSubstring, "Overall score: 80/100")
			})

			convey.Convey("Then the report request carries the evaluation", func() {
				convey.So(mock.ReportReq, convey.ShouldNotBeNil)
				convey.So(mock.ReportReq.Overall, convey.ShouldEqual, 80)
				convey.So(mock.ReportReq.TechnicalScore, convey.ShouldEqual, 75)
				convey.So(mock.ReportReq.RoleScore, convey.ShouldEqual, 80)
				convey.So(mock.ReportReq.ResumeScore, convey.ShouldEqual, 70)
				convey.So(mock.ReportReq.Strengths, convey.ShouldResemble, []string{"clear explanations"})
				convey.So(mock.ReportReq.CandidateName, convey.ShouldEqual, "Alex")
			})

			convey.Convey("Then the report lands next to the invocation", func() {
				name := "interview-report-" + w.upload.SessionID() + ".md"
				data, err := os.ReadFile(name)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, "# report")
			})
		})
	})
}
