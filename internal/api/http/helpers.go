package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/genai"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/lkpd"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errStatus maps the service error taxonomy onto HTTP status codes. Everything
// is recoverable; nothing here is allowed to kill the process.
func errStatus(err error) int {
	switch {
	case errors.Is(err, lkpd.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lkpd.ErrTopicRequired), errors.Is(err, lkpd.ErrLearnerRequired):
		return http.StatusBadRequest
	case errors.Is(err, lkpd.ErrBadPayload), errors.Is(err, genai.ErrService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
