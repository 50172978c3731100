package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/entity"
	"github.com/resumesavvy/interview-agent/internal/metrics"
	"github.com/resumesavvy/interview-agent/internal/pkg/validator"
	"github.com/smartystreets/goconvey/convey"
)

type fakeUsecase struct {
	extractErr error
	submitErr  error
	questions  []string
}

func (f *fakeUsecase) ExtractResume(ctx context.Context, sessionID, filename string, content []byte) (*entity.ExtractResponse, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return &entity.ExtractResponse{SessionID: sessionID, ChunksIndexed: 12}, nil
}

func (f *fakeUsecase) GenerateTechnicalQuestions(ctx context.Context, req *entity.QuestionsRequest) ([]string, error) {
	return f.questions, nil
}

func (f *fakeUsecase) GenerateHRQuestions(ctx context.Context, req *entity.HRQuestionsRequest) ([]string, error) {
	return f.questions, nil
}

func (f *fakeUsecase) SubmitAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error {
	return f.submitErr
}

func (f *fakeUsecase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "missing" {
		return nil, entity.ErrSessionNotFound
	}
	return &entity.Session{ID: sessionID, Status: entity.SessionStatusReady, ChunksIndexed: 12}, nil
}

func (f *fakeUsecase) ListQuestions(ctx context.Context, sessionID string) ([]entity.Question, error) {
	return nil, nil
}

func (f *fakeUsecase) Evaluate(ctx context.Context, req *entity.EvaluateRequest) (*entity.EvaluateResponse, error) {
	return &entity.EvaluateResponse{Overall: 72.5}, nil
}

func newTestRouter(uc InterviewUsecase) http.Handler {
	v := validator.NewFileValidator(config.FileUploadConfig{
		MaxResumeSize: 1 << 20,
		MaxUploadSize: 1 << 20,
	})
	h := NewHandler(uc, v, metrics.New(), 1<<20)

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r
}

func multipartResume(t *testing.T, sessionID, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("session_id", sessionID); err != nil {
		t.Fatal(err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.7 resume"))
	writer.Close()

	return &body, writer.FormDataContentType()
}

func TestExtractHandler(t *testing.T) {
	convey.Convey("Given the extract endpoint", t, func() {
		router := newTestRouter(&fakeUsecase{})

		convey.Convey("When a PDF resume is uploaded", func() {
			body, contentType := multipartResume(t, "session-1", "cv.pdf", "application/pdf")
			req := httptest.NewRequest(http.MethodPost, "/extract", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			convey.Convey("Then the chunk count is returned", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				var resp entity.ExtractResponse
				convey.So(json.Unmarshal(rec.Body.Bytes(), &resp), convey.ShouldBeNil)
				convey.So(resp.SessionID, convey.ShouldEqual, "session-1")
				convey.So(resp.ChunksIndexed, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When the file is not a PDF", func() {
			body, contentType := multipartResume(t, "session-1", "cv.docx", "application/msword")
			req := httptest.NewRequest(http.MethodPost, "/extract", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("When the session id is missing", func() {
			body, contentType := multipartResume(t, "", "cv.pdf", "application/pdf")
			req := httptest.NewRequest(http.MethodPost, "/extract", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestQuestionsHandler(t *testing.T) {
	convey.Convey("Given the technical questions endpoint", t, func() {
		router := newTestRouter(&fakeUsecase{questions: []string{"Q1", "Q2"}})

		convey.Convey("When a valid request arrives", func() {
			payload := `{"session_id":"s-1","role":"Developer","count_role":1,"count_resume":1}`
			req := httptest.NewRequest(http.MethodPost, "/questions/technical", strings.NewReader(payload))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

			var resp entity.QuestionsResponse
			convey.So(json.Unmarshal(rec.Body.Bytes(), &resp), convey.ShouldBeNil)
			convey.So(resp.Questions, convey.ShouldResemble, []string{"Q1", "Q2"})
		})

		convey.Convey("When the request asks for zero questions", func() {
			payload := `{"session_id":"s-1","role":"Developer"}`
			req := httptest.NewRequest(http.MethodPost, "/questions/technical", strings.NewReader(payload))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestSubmitAnswersHandler(t *testing.T) {
	convey.Convey("Given the answers endpoint", t, func() {
		payload := `{"answers":[{"question":"Q1","answer":"A1","type":"role"}]}`

		convey.Convey("When the sequence was already submitted", func() {
			router := newTestRouter(&fakeUsecase{submitErr: entity.ErrAnswersAlreadySaved})
			req := httptest.NewRequest(http.MethodPost, "/interview-session/s-1/answers", strings.NewReader(payload))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusConflict)
		})

		convey.Convey("When the submission succeeds", func() {
			router := newTestRouter(&fakeUsecase{})
			req := httptest.NewRequest(http.MethodPost, "/interview-session/s-1/answers", strings.NewReader(payload))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestGetSessionHandler(t *testing.T) {
	convey.Convey("Given the session endpoint", t, func() {
		router := newTestRouter(&fakeUsecase{})

		convey.Convey("When the session exists", func() {
			req := httptest.NewRequest(http.MethodGet, "/interview-session/s-1", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"session_status":"READY"`)
		})

		convey.Convey("When it does not", func() {
			req := httptest.NewRequest(http.MethodGet, "/interview-session/missing", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestReportHandler(t *testing.T) {
	convey.Convey("Given the report endpoint", t, func() {
		router := newTestRouter(&fakeUsecase{})
		payload := `{"session_id":"s-1","candidate_name":"Alex","role":"Developer","technical_score":70,"hr_score":75}`

		convey.Convey("When markdown is requested", func() {
			req := httptest.NewRequest(http.MethodPost, "/report?format=markdown", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Header().Get("Content-Type"), convey.ShouldContainSubstring, "markdown")
			convey.So(rec.Header().Get("Content-Disposition"), convey.ShouldContainSubstring, "interview-report-s-1.md")
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, "# Alex - Interview Results")
		})

		convey.Convey("When the format is unknown", func() {
			req := httptest.NewRequest(http.MethodPost, "/report?format=html", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})
	})
}
