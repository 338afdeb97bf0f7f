package httpapi

import (
	"net/http"

	"github.com/hnguyen/assistant-backend/internal/model"
)

type createNotificationRequest struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
	Type    string `json:"type"`
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	ns, err := s.notifications.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if ns == nil {
		ns = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, ns)
}

func (s *Server) listUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	ns, err := s.notifications.GetUnread(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if ns == nil {
		ns = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, ns)
}

func (s *Server) createNotification(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := s.notifications.Create(r.Context(), req.Message, req.TaskID, req.Type)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.notifications.MarkRead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	existed, err := s.notifications.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !existed {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
