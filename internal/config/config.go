package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	// worksheet/submission persistence: sqlite|postgres|fs|memory
	StoreDriver string
	DBDSN       string
	DataDir     string // for the fs driver

	// text-generation service
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	AuthHMACSecret  string
	TeacherUser     string
	TeacherPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),

		StoreDriver: envOr("STORE_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		DataDir:     envOr("DATA_DIR", "./lkpd_outputs"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: envOr("GEMINI_BASE_URL", ""),
		GeminiTimeout: time.Duration(envInt("GEMINI_TIMEOUT_SEC", 30)) * time.Second,

		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		TeacherUser:    envOr("TEACHER_USER", "guru"),
		// default hash matches the dev password "guru"
		TeacherPassHash: envOr("TEACHER_PASS_HASH", "$2a$12$4SgXjtO0CbDLmSBmpYqYPeJ80VfTn8JEHs0VOFDhblxSCl4uY1mgq"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://eduai.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
