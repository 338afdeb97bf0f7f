package httpapi

import (
	"net/http"

	"github.com/hnguyen/assistant-backend/internal/model"
)

type storeMemoryRequest struct {
	Content  string `json:"content"`
	Category string `json:"category"`
	// Tier is "long_term" or "short_term"; defaults to short_term.
	Tier string `json:"tier"`
}

type storeAcademicRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

func (s *Server) searchMemory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	records, err := s.memories.Retrieve(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if records == nil {
		records = []model.MemoryRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) storeMemory(w http.ResponseWriter, r *http.Request) {
	var req storeMemoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		rec model.MemoryRecord
		err error
	)
	switch req.Tier {
	case string(model.TierLongTerm):
		rec, err = s.memories.StoreLongTerm(r.Context(), req.Content, req.Category)
	case string(model.TierShortTerm), "":
		rec, err = s.memories.StoreShortTerm(r.Context(), req.Content, req.Category)
	default:
		writeError(w, http.StatusBadRequest, "tier must be long_term or short_term")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) listAcademic(w http.ResponseWriter, r *http.Request) {
	infos, err := s.memories.Academic(r.Context(), r.URL.Query().Get("subject"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if infos == nil {
		infos = []model.AcademicInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) storeAcademic(w http.ResponseWriter, r *http.Request) {
	var req storeAcademicRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := s.memories.StoreAcademic(r.Context(), req.Subject, req.Content, req.Type)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, info)
}
