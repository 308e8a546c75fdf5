package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/lkpd"
)

// POST /lkpd  { "topic": "...", "level": "...", "extra_context": "..." }
func CreateLkpdHandler(svc *lkpd.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Topic        string `json:"topic"`
			Level        string `json:"level"`
			ExtraContext string `json:"extra_context"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		ws, err := svc.CreateWorksheet(r.Context(), req.Topic, lkpd.GenerateOptions{
			Level:        req.Level,
			ExtraContext: req.ExtraContext,
		})
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, http.StatusCreated, ws)
	}
}

// GET /lkpd?limit=&offset=
func ListLkpdHandler(svc *lkpd.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := lkpd.ListOpts{}
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			opts.Limit = v
		}
		if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
			opts.Offset = v
		}
		out, err := svc.ListWorksheets(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		if out == nil {
			out = []lkpd.WorksheetSummary{}
		}
		writeJSON(w, http.StatusOK, out)
	}
}
