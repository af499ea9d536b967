package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edustack/exam-service/internal/cache"
	"github.com/edustack/exam-service/internal/events"
	"github.com/edustack/exam-service/internal/repositories/upstream"
	"github.com/edustack/exam-service/internal/services"
	"github.com/edustack/exam-service/internal/utils"
	"github.com/edustack/exam-service/internal/validator"
)

// upstreamMux fakes the question service, result service and webhooks
// behind a single server
func upstreamMux(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/questions/exam/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"exam_id":42,"mcq":[{"question":"2+2?","options":["3","4"],"correct_answer":"4"}],"one_mark":[{"question":"Define osmosis."}],"three_mark":[{"question":"Explain photosynthesis."}]}]`))
	})
	mux.HandleFunc("/api/v1/exams/42/student/CSE-101", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"exam_id":"42","student_id":"CSE-101","student_name":"Alice Rahman","score":95,"total_marks":100,"results":[]}`))
	})
	mux.HandleFunc("/api/v1/exams/42/results", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"exam_id":"42","student_id":"CSE-101","student_name":"Alice Rahman","score":95,"total_marks":100,"results":[]}]`))
	})
	mux.HandleFunc("/webhook/exam/submit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := upstreamMux(t)
	slogLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger := utils.NewSlogLogger(slogLogger)

	repoManager := upstream.NewRepositoryManager(upstream.RepositoryConfig{
		QuestionServiceURL: server.URL,
		HTTPClient:         server.Client(),
	})
	if err := repoManager.Initialize(); err != nil {
		t.Fatalf("Failed to initialize repositories: %v", err)
	}

	publisher := events.NewMockEventPublisher(slogLogger)
	serviceManager := services.NewDefaultServiceManager(
		repoManager.GetRepository(), cache.NewCacheManager(nil), publisher, slogLogger, validator.New())
	if err := serviceManager.Initialize(context.Background()); err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	router := gin.New()
	SetupMiddleware(router, logger)
	NewHandlerManager(serviceManager, logger).SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("Unexpected health body: %s", w.Body.String())
	}
}

func TestRouter_ExamLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// The exam view is public once the identity gate passes at session start
	w := doJSON(t, router, http.MethodGet, "/api/v1/exams/42", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET exam: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Exam #42") {
		t.Errorf("Expected derived exam title in response")
	}

	// Start a session
	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions",
		`{"exam_id":"42","student_name":"Alice Rahman","student_roll":"CSE-101"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST session: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var started struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		QuestionCount int    `json:"question_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &started); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	if started.Status != "in_progress" || started.QuestionCount != 3 {
		t.Errorf("Unexpected session state: %+v", started)
	}

	// Answer one question
	w = doJSON(t, router, http.MethodPut, "/api/v1/sessions/"+started.ID+"/answers",
		`{"question_index":0,"answer":"4"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT answer: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Out-of-range index is a client error
	w = doJSON(t, router, http.MethodPut, "/api/v1/sessions/"+started.ID+"/answers",
		`{"question_index":7,"answer":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range index, got %d", w.Code)
	}

	// Report an integrity event
	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+started.ID+"/events",
		`{"type":"visibility_hidden"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("POST event: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Submit
	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+started.ID+"/submit", "")
	if w.Code != http.StatusOK {
		t.Fatalf("POST submit: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"submitted"`) {
		t.Errorf("Expected submitted status in response: %s", w.Body.String())
	}

	// A second submit conflicts
	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+started.ID+"/submit", "")
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for double submit, got %d", w.Code)
	}
}

func TestRouter_SessionValidation(t *testing.T) {
	router := newTestRouter(t)

	// Whitespace-only identity never opens a session
	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions",
		`{"exam_id":"42","student_name":"  ","student_roll":"CSE-101"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank name, got %d: %s", w.Code, w.Body.String())
	}

	// Unknown exams surface as 404
	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions",
		`{"exam_id":"999","student_name":"Alice Rahman","student_roll":"CSE-101"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing exam, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouter_Results(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/results/exam/42/student/CSE-101", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET student result: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"grade":"A+"`) {
		t.Errorf("Expected grade A+ in response: %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/results/exam/42/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET stats: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/results/exam/42/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET export: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheet") {
		t.Errorf("Expected xlsx content type, got %s", ct)
	}
}
