package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/integration/backend"
	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

func TestUploadStep(t *testing.T) {
	logger := zap.NewNop()
	pdf := []byte("%PDF-1.7 fake resume")

	convey.Convey("Given an upload step", t, func() {
		mock := backend.NewMockConnector()
		var result *UploadResult
		step := NewUploadStep(mock, func(r UploadResult) { result = &r }, logger)

		convey.Convey("When a non-PDF file is selected", func() {
			err := step.SelectFile(context.Background(), "resume.docx",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document", pdf)

			convey.Convey("Then it is rejected without any network call", func() {
				convey.So(errors.Is(err, entity.ErrNotPDF), convey.ShouldBeTrue)
				convey.So(mock.ExtractCalls, convey.ShouldEqual, 0)
				convey.So(step.CanSubmit(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a PDF resume is selected", func() {
			err := step.SelectFile(context.Background(), "resume.pdf", "application/pdf", pdf)

			convey.Convey("Then extraction runs and produces a status line", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(mock.ExtractCalls, convey.ShouldEqual, 1)
				convey.So(step.Status(), convey.ShouldContainSubstring, "12")
				convey.So(step.CanSubmit(), convey.ShouldBeTrue)
			})

			convey.Convey("Then the generated session identifier is a canonical UUID", func() {
				id := step.SessionID()
				convey.So(len(id), convey.ShouldEqual, 36)
				convey.So(strings.Count(id, "-"), convey.ShouldEqual, 4)
				convey.So(id[8], convey.ShouldEqual, byte('-'))
				convey.So(id[13], convey.ShouldEqual, byte('-'))
				convey.So(id[18], convey.ShouldEqual, byte('-'))
				convey.So(id[23], convey.ShouldEqual, byte('-'))
				// version nibble is fixed to 4, variant to RFC 4122
				convey.So(id[14], convey.ShouldEqual, byte('4'))
				convey.So("89ab", convey.ShouldContainSubstring, string(id[19]))
			})

			convey.Convey("Then submitting hands the session to the next step", func() {
				convey.So(step.Submit(), convey.ShouldBeTrue)
				convey.So(result, convey.ShouldNotBeNil)
				convey.So(result.SessionID, convey.ShouldEqual, step.SessionID())
				convey.So(result.ResumeContent, convey.ShouldResemble, pdf)
			})
		})

		convey.Convey("When extraction fails", func() {
			mock.FailCalls = true
			err := step.SelectFile(context.Background(), "resume.pdf", "application/pdf", pdf)

			convey.Convey("Then submission stays blocked and the step is retryable", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(step.CanSubmit(), convey.ShouldBeFalse)
				convey.So(step.Processing(), convey.ShouldBeFalse)
				convey.So(step.Submit(), convey.ShouldBeFalse)
				convey.So(result, convey.ShouldBeNil)
			})

			convey.Convey("And retrying the same file generates a fresh session id", func() {
				mock.FailCalls = false
				convey.So(step.SelectFile(context.Background(), "resume.pdf", "application/pdf", pdf), convey.ShouldBeNil)
				first := step.SessionID()
				convey.So(step.SelectFile(context.Background(), "resume.pdf", "application/pdf", pdf), convey.ShouldBeNil)
				convey.So(step.SessionID(), convey.ShouldNotEqual, first)
			})
		})
	})
}
