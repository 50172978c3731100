package validator

import (
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/smartystreets/goconvey/convey"
)

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return header
}

func TestValidateResumeFile(t *testing.T) {
	v := NewFileValidator(config.FileUploadConfig{
		MaxResumeSize:     1 << 20,
		MaxAudioChunkSize: 1 << 10,
	})

	convey.Convey("Given resume uploads", t, func() {
		convey.Convey("Then PDF content types are accepted", func() {
			convey.So(v.ValidateResumeFile(fileHeader("cv.pdf", "application/pdf", 1024)), convey.ShouldBeNil)
			convey.So(v.ValidateResumeFile(fileHeader("cv.bin", "application/x-pdf", 1024)), convey.ShouldBeNil)
		})

		convey.Convey("Then a .pdf extension is enough when the type is missing", func() {
			convey.So(v.ValidateResumeFile(fileHeader("cv.pdf", "", 1024)), convey.ShouldBeNil)
		})

		convey.Convey("Then non-PDF files are rejected", func() {
			err := v.ValidateResumeFile(fileHeader("cv.docx", "application/msword", 1024))
			convey.So(errors.Is(err, entity.ErrNotPDF), convey.ShouldBeTrue)
		})

		convey.Convey("Then oversized files are rejected", func() {
			err := v.ValidateResumeFile(fileHeader("cv.pdf", "application/pdf", 2<<20))
			convey.So(errors.Is(err, entity.ErrFileTooLarge), convey.ShouldBeTrue)
		})

		convey.Convey("Then a missing file is rejected", func() {
			err := v.ValidateResumeFile(nil)
			convey.So(errors.Is(err, entity.ErrMissingField), convey.ShouldBeTrue)
		})
	})
}

func TestValidateResumeContentType(t *testing.T) {
	convey.Convey("Given declared content types", t, func() {
		convey.So(ValidateResumeContentType("application/pdf"), convey.ShouldBeNil)
		convey.So(ValidateResumeContentType("application/PDF"), convey.ShouldBeNil)
		convey.So(errors.Is(ValidateResumeContentType("text/plain"), entity.ErrNotPDF), convey.ShouldBeTrue)
		convey.So(errors.Is(ValidateResumeContentType(""), entity.ErrNotPDF), convey.ShouldBeTrue)
	})
}

func TestValidateQuestionsRequest(t *testing.T) {
	v := NewFileValidator(config.FileUploadConfig{})

	convey.Convey("Given question generation requests", t, func() {
		convey.Convey("Then a well-formed request passes", func() {
			err := v.ValidateQuestionsRequest(&entity.QuestionsRequest{
				SessionID: "s-1", Role: "Developer", CountRole: 7, CountResume: 8,
			})
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("Then a missing session id fails", func() {
			err := v.ValidateQuestionsRequest(&entity.QuestionsRequest{CountRole: 1})
			convey.So(errors.Is(err, entity.ErrMissingField), convey.ShouldBeTrue)
		})

		convey.Convey("Then zero total questions fail", func() {
			err := v.ValidateQuestionsRequest(&entity.QuestionsRequest{SessionID: "s-1"})
			convey.So(errors.Is(err, entity.ErrInvalidParameter), convey.ShouldBeTrue)
		})

		convey.Convey("Then negative counts fail", func() {
			err := v.ValidateQuestionsRequest(&entity.QuestionsRequest{SessionID: "s-1", CountRole: -1, CountResume: 5})
			convey.So(errors.Is(err, entity.ErrInvalidParameter), convey.ShouldBeTrue)
		})
	})
}

func TestValidateSubmitAnswers(t *testing.T) {
	v := NewFileValidator(config.FileUploadConfig{})

	convey.Convey("Given answer submissions", t, func() {
		convey.Convey("Then a tagged answer sequence passes", func() {
			err := v.ValidateSubmitAnswers(&entity.SubmitAnswersRequest{Answers: []entity.Answer{
				{Question: "Q1", Text: "A1", Kind: entity.QuestionKindRole},
				{Question: "Q2", Text: "", Kind: entity.QuestionKindResume},
			}})
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("Then an empty sequence fails", func() {
			err := v.ValidateSubmitAnswers(&entity.SubmitAnswersRequest{})
			convey.So(errors.Is(err, entity.ErrMissingField), convey.ShouldBeTrue)
		})

		convey.Convey("Then an unknown question type fails", func() {
			err := v.ValidateSubmitAnswers(&entity.SubmitAnswersRequest{Answers: []entity.Answer{
				{Question: "Q1", Text: "A1", Kind: entity.QuestionKind("behavioral")},
			}})
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestValidateAudioChunk(t *testing.T) {
	v := NewFileValidator(config.FileUploadConfig{MaxAudioChunkSize: 1024})

	convey.Convey("Given relayed audio chunks", t, func() {
		convey.So(v.ValidateAudioChunk(512), convey.ShouldBeNil)
		convey.So(errors.Is(v.ValidateAudioChunk(2048), entity.ErrFileTooLarge), convey.ShouldBeTrue)
	})
}
