package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	auth "github.com/ruslirisal38/lms-interaktif-eduai/internal/auth/middleware"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/lkpd"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/rbac"
)

type RouterConfig struct {
	Auth        *auth.AuthService
	Teacher     auth.TeacherAccount
	CORSOrigins []string
}

// NewRouter wires the full HTTP surface: public login and health endpoints,
// and the protected API behind JWT validation and role checks.
func NewRouter(svc *lkpd.Service, rc RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	if len(rc.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rc.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Post("/auth/login", auth.LoginHandler(rc.Auth, rc.Teacher))

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(rc.Auth))

		pr.With(rbac.Require("lkpd:create")).
			Post("/lkpd", CreateLkpdHandler(svc))
		pr.With(rbac.Require("lkpd:list")).
			Get("/lkpd", ListLkpdHandler(svc))
		pr.With(rbac.Require("lkpd:view")).
			Get("/lkpd/{lkpdID}", GetLkpdHandler(svc))

		pr.With(rbac.Require("submission:create")).
			Post("/lkpd/{lkpdID}/submissions", CreateSubmissionHandler(svc))
		pr.With(rbac.Require("submission:view-all")).
			Get("/lkpd/{lkpdID}/submissions", ListSubmissionsHandler(svc))
		pr.With(rbac.Require("submission:score")).
			Post("/lkpd/{lkpdID}/score", ScoreWorksheetHandler(svc))

		pr.With(rbac.RequireAny("submission:view-own", "submission:view-all")).
			Get("/submissions/{submissionID}", GetSubmissionHandler(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	return r
}
