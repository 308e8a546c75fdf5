package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/ruslirisal38/lms-interaktif-eduai/internal/api/http"
	auth "github.com/ruslirisal38/lms-interaktif-eduai/internal/auth/middleware"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/config"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/db"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/eventlog"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/genai"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/grading"
	"github.com/ruslirisal38/lms-interaktif-eduai/internal/lkpd"
)

func main() {
	cfg := config.FromEnv()

	// --- Store ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store lkpd.Store
	var svcOpts []lkpd.Option
	switch cfg.StoreDriver {
	case "sqlite", "postgres":
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = lkpd.NewSQLStore(dbh)
		svcOpts = append(svcOpts, lkpd.WithEvents(eventlog.NewRepo(dbh)))
	case "fs":
		fs, err := lkpd.NewFSStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("fs store: %v", err)
		}
		store = fs
	case "memory":
		store = lkpd.NewMemoryStore()
	default:
		log.Fatalf("unsupported store driver: %s", cfg.StoreDriver)
	}

	// --- Gemini client (constructed once; a bad key fails at startup) ---
	gen, err := genai.NewClient(genai.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeminiTimeout,
	})
	if err != nil {
		log.Fatalf("genai client: %v", err)
	}

	svc := lkpd.NewService(store, gen, grading.NewScorer(gen), svcOpts...)

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r := api.NewRouter(svc, api.RouterConfig{
		Auth:        auth.NewAuthService(cfg.AuthHMACSecret),
		Teacher:     auth.TeacherAccount{Username: cfg.TeacherUser, PassHash: cfg.TeacherPassHash},
		CORSOrigins: origins,
	})

	log.Printf("listening on %s (mode=%s, store=%s, model=%s)",
		cfg.HTTPAddr, cfg.Mode, cfg.StoreDriver, cfg.GeminiModel)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
