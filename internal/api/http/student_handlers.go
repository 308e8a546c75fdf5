package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/ruslirisal38/lms-interaktif-eduai/internal/auth/middleware"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/lkpd"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/rbac"
)

// GET /lkpd/{lkpdID}
func GetLkpdHandler(svc *lkpd.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := svc.GetWorksheet(r.Context(), chi.URLParam(r, "lkpdID"))
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, http.StatusOK, ws)
	}
}

// POST /lkpd/{lkpdID}/submissions  { "learner_name": "...", "answers": {"ans_0_0": "..."} }
// The learner name defaults to the token subject when omitted.
func CreateSubmissionHandler(svc *lkpd.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			LearnerName string            `json:"learner_name"`
			Answers     map[string]string `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.LearnerName == "" {
			req.LearnerName = auth.SubjectFromContext(r.Context())
		}
		sub, err := svc.SubmitAnswers(r.Context(), chi.URLParam(r, "lkpdID"), req.LearnerName, req.Answers)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		writeJSON(w, http.StatusCreated, sub)
	}
}

// GET /submissions/{submissionID}
// Students may only read their own submission; teachers may read any.
func GetSubmissionHandler(svc *lkpd.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := svc.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"))
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		role := rbac.RoleFromContext(r.Context())
		if !rbac.NewChecker(nil).Has(role, "submission:view-all") &&
			sub.LearnerName != auth.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}
