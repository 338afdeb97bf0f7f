package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hnguyen/assistant-backend/internal/ai"
	"github.com/hnguyen/assistant-backend/internal/model"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses:
// validation 400, not-found 404, upstream AI failure 502, otherwise 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case model.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case ai.IsUpstream(err):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody reads at most maxBodyBytes of the request body and decodes
// it as JSON into v.
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	lr := io.LimitReader(r.Body, maxBodyBytes+1)

	b, err := io.ReadAll(lr)
	if err != nil {
		return errors.New("failed to read body")
	}
	if int64(len(b)) > maxBodyBytes {
		return errors.New("payload too large")
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}
