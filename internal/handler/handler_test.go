package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Karann1101/sahyadri-guardian/internal/config"
	"github.com/Karann1101/sahyadri-guardian/internal/database"
	"github.com/Karann1101/sahyadri-guardian/internal/models"
	"github.com/Karann1101/sahyadri-guardian/internal/router"
	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testConfig returns a config with fast hashing and a short TTL. Configs are
// plain values, so every test builds its own.
func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost, PasswordMinLen: 8},
		App:      config.AppSubConfig{PageSize: 20},
	}
}

// setupTestEnv spins up a router backed by a throwaway sqlite file.
func setupTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()

	cfg := testConfig()
	db, err := database.Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedTrails(db); err != nil {
		t.Fatalf("seed trails: %v", err)
	}

	return router.SetupRouter(cfg, db), db, cfg
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sessionCookie extracts the auth-token cookie from a response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == util.AuthCookieName {
			return c
		}
	}
	t.Fatal("no auth-token cookie in response")
	return nil
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

// createUser inserts an account directly, bypassing the signup handler.
func createUser(t *testing.T, db *gorm.DB, email, password, role string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Test User",
		Role:         role,
		IsActive:     active,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// loginAs logs a user in and returns the session cookie.
func loginAs(t *testing.T, r *gin.Engine, email, password string) *http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s: status %d, body %s", email, w.Code, w.Body.String())
	}
	return sessionCookie(t, w)
}
