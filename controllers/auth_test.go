package controllers

import (
	"database/sql/driver"
	"net/http"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"company-board-api/models"
	"company-board-api/utils"
)

func newAuthRouter(t *testing.T, steps []*queryStep) (*gin.Engine, *scriptedDB, func()) {
	t.Helper()
	db, state, cleanup := newScriptedGormDB(t, steps)
	ac := NewAuthController(db)

	router := gin.New()
	router.POST("/api/auth/login", ac.Login)
	router.POST("/api/auth/register", ac.Register)
	router.GET("/api/auth/me", asUser(1, models.RoleUser, "Test User"), ac.Me)
	return router, state, cleanup
}

func userRow(id int64, username, passwordHash string, role string, active bool) []driver.Value {
	return []driver.Value{id, username, username + "@example.com", passwordHash, "Some Name", role, active, time.Now()}
}

var userColumns = []string{"user_id", "username", "email", "password", "full_name", "role", "is_active", "create_at"}

func TestLoginSuccessIssuesBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("sup3rsecret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE username = \\?"),
			args:    []driver.Value{"alice", int64(1)},
			columns: userColumns,
			rows:    [][]driver.Value{userRow(1, "alice", hash, "user", true)},
		},
	}
	router, state, cleanup := newAuthRouter(t, steps)
	defer cleanup()

	w := doForm(t, router, http.MethodPost, "/api/auth/login", url.Values{
		"username": {"alice"},
		"password": {"sup3rsecret"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["token_type"] != "bearer" {
		t.Errorf("token_type = %v", body["token_type"])
	}
	if token, _ := body["access_token"].(string); token == "" {
		t.Error("empty access_token")
	}
	user, _ := body["user"].(map[string]any)
	if user == nil || user["username"] != "alice" {
		t.Errorf("unexpected user payload: %v", body["user"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password hash leaked in login response")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("rightpassword")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE username = \\?"),
			columns: userColumns,
			rows:    [][]driver.Value{userRow(1, "alice", hash, "user", true)},
		},
	}
	router, state, cleanup := newAuthRouter(t, steps)
	defer cleanup()

	w := doForm(t, router, http.MethodPost, "/api/auth/login", url.Values{
		"username": {"alice"},
		"password": {"wrongpassword"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	hash, err := utils.HashPassword("sup3rsecret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE username = \\?"),
			columns: userColumns,
			rows:    [][]driver.Value{userRow(1, "alice", hash, "user", false)},
		},
	}
	router, state, cleanup := newAuthRouter(t, steps)
	defer cleanup()

	w := doForm(t, router, http.MethodPost, "/api/auth/login", url.Values{
		"username": {"alice"},
		"password": {"sup3rsecret"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for deactivated account, got %d", w.Code)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterCreatesInactiveAccount(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?"),
			args:    []driver.Value{"newbie"},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `users` WHERE email = \\?"),
			args:    []driver.Value{"newbie@example.com"},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `users`"),
			result:  scriptedResult{lastInsertID: 5, rowsAffected: 1},
		},
	}
	router, state, cleanup := newAuthRouter(t, steps)
	defer cleanup()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username":  "newbie",
		"email":     "newbie@example.com",
		"password":  "longenough",
		"full_name": "New Colleague",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("unexpected body: %v", body)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?"),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}
	router, state, cleanup := newAuthRouter(t, steps)
	defer cleanup()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username":  "alice",
		"email":     "other@example.com",
		"password":  "longenough",
		"full_name": "Second Alice",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	router, state, cleanup := newAuthRouter(t, nil)
	defer cleanup()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username":  "bob",
		"email":     "bob@example.com",
		"password":  "short",
		"full_name": "Bob",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	router, state, cleanup := newAuthRouter(t, nil)
	defer cleanup()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"username":  "bob",
		"email":     "bob@example.com",
		"password":  "longenough",
		"full_name": "Bob",
		"role":      "superadmin",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
