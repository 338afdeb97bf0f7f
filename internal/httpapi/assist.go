package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/hnguyen/assistant-backend/internal/model"
	"github.com/hnguyen/assistant-backend/internal/planner"
)

type assistRequest struct {
	Content string `json:"content"`
}

type studyPlanRequest struct {
	Subject  string    `json:"subject"`
	ExamDate time.Time `json:"exam_date"`
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	content, ok := s.assistContent(w, r)
	if !ok {
		return
	}

	summary, err := s.assistant.Summarize(r.Context(), content)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) flashcards(w http.ResponseWriter, r *http.Request) {
	content, ok := s.assistContent(w, r)
	if !ok {
		return
	}

	cards, err := s.assistant.GenerateFlashcards(r.Context(), content)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if cards == nil {
		cards = []model.Flashcard{}
	}

	writeJSON(w, http.StatusOK, cards)
}

// assistContent validates the shared preconditions of the assist
// endpoints and returns the request content.
func (s *Server) assistContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	if s.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "ai assistant is not configured")
		return "", false
	}

	var req assistRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return "", false
	}

	return req.Content, true
}

func (s *Server) studyPlan(w http.ResponseWriter, r *http.Request) {
	var req studyPlanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		writeError(w, http.StatusBadRequest, "subject is required")
		return
	}
	if req.ExamDate.IsZero() {
		writeError(w, http.StatusBadRequest, "exam_date is required")
		return
	}

	sessions := s.planner.BuildStudyPlan(r.Context(), req.Subject, req.ExamDate)
	if sessions == nil {
		sessions = []planner.Event{}
	}

	writeJSON(w, http.StatusOK, sessions)
}
