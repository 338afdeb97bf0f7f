// Package httpapi exposes the backend over HTTP: task and notification
// CRUD, memory retrieval, and the AI assistant endpoints.
package httpapi

import (
	"context"
	"log"
	"net/http"

	"github.com/hnguyen/assistant-backend/internal/memory"
	"github.com/hnguyen/assistant-backend/internal/model"
	"github.com/hnguyen/assistant-backend/internal/notify"
	"github.com/hnguyen/assistant-backend/internal/planner"
	"github.com/hnguyen/assistant-backend/internal/task"
)

// Assistant is the AI content capability consumed by the assist
// endpoints.
type Assistant interface {
	Summarize(ctx context.Context, content string) (string, error)
	GenerateFlashcards(ctx context.Context, content string) ([]model.Flashcard, error)
}

// Server bundles the registries behind the HTTP surface.
type Server struct {
	tasks         *task.Service
	notifications *notify.Service
	memories      *memory.Service
	assistant     Assistant
	planner       *planner.Planner
	logger        *log.Logger
}

// NewServer creates the HTTP surface. assistant may be nil when no AI
// credentials are configured; the assist endpoints then answer 503.
func NewServer(
	tasks *task.Service,
	notifications *notify.Service,
	memories *memory.Service,
	assistant Assistant,
	p *planner.Planner,
	logger *log.Logger,
) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		tasks:         tasks,
		notifications: notifications,
		memories:      memories,
		assistant:     assistant,
		planner:       p,
		logger:        logger,
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /tasks", s.listTasks)
	mux.HandleFunc("POST /tasks", s.createTask)
	mux.HandleFunc("GET /tasks/{id}", s.getTask)
	mux.HandleFunc("PUT /tasks/{id}", s.updateTask)
	mux.HandleFunc("DELETE /tasks/{id}", s.deleteTask)

	mux.HandleFunc("GET /notifications", s.listNotifications)
	mux.HandleFunc("GET /notifications/unread", s.listUnreadNotifications)
	mux.HandleFunc("POST /notifications", s.createNotification)
	mux.HandleFunc("PUT /notifications/{id}/read", s.markNotificationRead)
	mux.HandleFunc("DELETE /notifications/{id}", s.deleteNotification)

	mux.HandleFunc("GET /memory", s.searchMemory)
	mux.HandleFunc("POST /memory", s.storeMemory)

	mux.HandleFunc("GET /academic", s.listAcademic)
	mux.HandleFunc("POST /academic", s.storeAcademic)

	mux.HandleFunc("POST /assist/summarize", s.summarize)
	mux.HandleFunc("POST /assist/flashcards", s.flashcards)
	mux.HandleFunc("POST /planner/study-plan", s.studyPlan)

	return WithRequestID()(Logging(s.logger)(mux))
}
