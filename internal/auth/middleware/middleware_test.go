package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/ruslirisal38/lms-interaktif-eduai/internal/rbac"
)

func testTeacher(t *testing.T) TeacherAccount {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return TeacherAccount{Username: "guru", PassHash: string(hash)}
}

func doLogin(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestLogin_TeacherOK(t *testing.T) {
	a := NewAuthService("test-secret")
	rec := doLogin(t, LoginHandler(a, testTeacher(t)),
		`{"username":"guru","password":"rahasia","role":"teacher"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	claims, err := a.Parse(out["access_token"])
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Sub != "guru" || claims.Role != "teacher" {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestLogin_TeacherBadPassword(t *testing.T) {
	a := NewAuthService("test-secret")
	rec := doLogin(t, LoginHandler(a, testTeacher(t)),
		`{"username":"guru","password":"salah","role":"teacher"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestLogin_StudentNameOnly(t *testing.T) {
	a := NewAuthService("test-secret")
	h := LoginHandler(a, testTeacher(t))

	rec := doLogin(t, h, `{"username":"Ana","role":"student"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	rec = doLogin(t, h, `{"username":"  ","role":"student"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank student name: status %d", rec.Code)
	}
}

func TestLogin_UnknownRole(t *testing.T) {
	a := NewAuthService("test-secret")
	rec := doLogin(t, LoginHandler(a, testTeacher(t)), `{"username":"x","role":"admin"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestJWTMiddleware_AttachesSubjectAndRole(t *testing.T) {
	a := NewAuthService("test-secret")
	tok, err := a.IssueJWT("Ana", "student")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var gotSub, gotRole string
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/lkpd", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	JWTMiddleware(a)(probe).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if gotSub != "Ana" || gotRole != "student" {
		t.Fatalf("context: sub=%q role=%q", gotSub, gotRole)
	}
}

func TestJWTMiddleware_Rejects(t *testing.T) {
	a := NewAuthService("test-secret")
	probe := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})
	mw := JWTMiddleware(a)(probe)

	req := httptest.NewRequest(http.MethodGet, "/lkpd", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status %d", rec.Code)
	}

	other := NewAuthService("another-secret")
	tok, _ := other.IssueJWT("Ana", "student")
	req = httptest.NewRequest(http.MethodGet, "/lkpd", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong signature: status %d", rec.Code)
	}
}
