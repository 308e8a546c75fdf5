package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/lkpd"
)

// GET /lkpd/{lkpdID}/submissions
func ListSubmissionsHandler(svc *lkpd.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := svc.ListSubmissions(r.Context(), chi.URLParam(r, "lkpdID"))
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		if subs == nil {
			subs = []lkpd.Submission{}
		}
		writeJSON(w, http.StatusOK, subs)
	}
}

// POST /lkpd/{lkpdID}/score
// Runs the scoring pass over every submission for the worksheet. Re-running
// overwrites prior scores and feedback.
func ScoreWorksheetHandler(svc *lkpd.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.ScoreAll(r.Context(), chi.URLParam(r, "lkpdID"))
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"scored": n})
	}
}
