package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/Karann1101/sahyadri-guardian/internal/models"
	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignup_NormalizesEmail(t *testing.T) {
	r, db, _ := setupTestEnv(t)

	w := doJSON(t, r, http.MethodPost, "/api/signup", map[string]string{
		"email":    "  Trekker@Example.COM ",
		"password": "secret123",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	if user["email"] != "trekker@example.com" {
		t.Errorf("email = %v, want trekker@example.com", user["email"])
	}
	// display name defaults to the email local part
	if user["displayName"] != "trekker" {
		t.Errorf("displayName = %v, want trekker", user["displayName"])
	}

	var stored models.User
	if err := db.Where("email = ?", "trekker@example.com").First(&stored).Error; err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "secret123" {
		t.Error("password must not be stored in plaintext")
	}
	if !stored.IsActive || stored.Role != models.RoleUser {
		t.Errorf("defaults wrong: active=%v role=%q", stored.IsActive, stored.Role)
	}

	// signup also signs the user in
	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookie.Path != "/" {
		t.Errorf("cookie path = %q, want /", cookie.Path)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	r, db, _ := setupTestEnv(t)

	first := doJSON(t, r, http.MethodPost, "/api/signup", map[string]string{
		"email":    "a@x.com",
		"password": "secret123",
	}, nil)
	if first.Code != http.StatusCreated {
		t.Fatalf("first signup: status %d", first.Code)
	}

	// identical and case-variant repeats both conflict
	for _, email := range []string{"a@x.com", "A@X.COM"} {
		w := doJSON(t, r, http.MethodPost, "/api/signup", map[string]string{
			"email":    email,
			"password": "secret123",
		}, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("signup %q: status = %d, want 400", email, w.Code)
		}
		if body := decodeBody(t, w); body["error"] != "User already exists" {
			t.Errorf("signup %q: error = %v", email, body["error"])
		}
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestSignup_Validation(t *testing.T) {
	r, _, _ := setupTestEnv(t)

	cases := []map[string]string{
		{"password": "secret123"}, // missing email
		{"email": "a@x.com"},      // missing password
		{"email": "not-an-email", "password": "secret123"},
		{"email": "a@x.com", "password": "short"}, // below minimum length
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/signup", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("signup %v: status = %d, want 400", body, w.Code)
		}
	}
}

func TestLogin_EnumerationSafe(t *testing.T) {
	r, db, _ := setupTestEnv(t)
	createUser(t, db, "a@x.com", "secret123", models.RoleUser, true)

	wrongPassword := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	}, nil)
	unknownEmail := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret123",
	}, nil)

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("error payloads differ: %q vs %q",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	r, db, _ := setupTestEnv(t)
	createUser(t, db, "a@x.com", "secret123", models.RoleUser, false)

	w := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"email":    "a@x.com",
		"password": "secret123",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Invalid credentials" {
		t.Errorf("error = %v, want Invalid credentials", body["error"])
	}
}

func TestLogin_RecordsAudit(t *testing.T) {
	r, db, _ := setupTestEnv(t)
	user := createUser(t, db, "a@x.com", "secret123", models.RoleUser, true)

	w := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"email":    "A@X.com", // case-insensitive lookup
		"password": "secret123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	resp := body["user"].(map[string]interface{})
	if resp["role"] != models.RoleUser {
		t.Errorf("role = %v, want user", resp["role"])
	}

	var events int64
	db.Model(&models.LoginEvent{}).Where("user_id = ?", user.ID).Count(&events)
	if events != 1 {
		t.Errorf("login events = %d, want 1", events)
	}

	var stored models.User
	db.First(&stored, user.ID)
	if stored.LastLoginAt == nil {
		t.Error("LastLoginAt not updated")
	}
}

func TestSession_RoundTrip(t *testing.T) {
	r, _, _ := setupTestEnv(t)

	signup := doJSON(t, r, http.MethodPost, "/api/signup", map[string]string{
		"email":    "a@x.com",
		"password": "secret123",
	}, nil)
	if signup.Code != http.StatusCreated {
		t.Fatalf("signup status = %d", signup.Code)
	}
	signupUser := decodeBody(t, signup)["user"].(map[string]interface{})
	cookie := sessionCookie(t, signup)

	me := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, cookie)
	if me.Code != http.StatusOK {
		t.Fatalf("me status = %d; body %s", me.Code, me.Body.String())
	}
	meUser := decodeBody(t, me)["user"].(map[string]interface{})

	if meUser["id"] != signupUser["id"] || meUser["email"] != signupUser["email"] {
		t.Errorf("identity mismatch: signup %v, me %v", signupUser, meUser)
	}
}

func TestSession_NoToken(t *testing.T) {
	r, _, _ := setupTestEnv(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSession_ExpiredToken(t *testing.T) {
	r, _, cfg := setupTestEnv(t)

	now := time.Now()
	claims := &util.Claims{
		UserID: 1,
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, &http.Cookie{
		Name:  util.AuthCookieName,
		Value: expired,
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSession_DeletedUser(t *testing.T) {
	r, db, _ := setupTestEnv(t)

	signup := doJSON(t, r, http.MethodPost, "/api/signup", map[string]string{
		"email":    "a@x.com",
		"password": "secret123",
	}, nil)
	cookie := sessionCookie(t, signup)

	// the account disappears while the token is still valid
	if err := db.Unscoped().Where("email = ?", "a@x.com").Delete(&models.User{}).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	r, _, _ := setupTestEnv(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	cookie := sessionCookie(t, w)
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestPasswordHashes_Salted(t *testing.T) {
	r, db, _ := setupTestEnv(t)

	for _, email := range []string{"a@x.com", "b@x.com"} {
		w := doJSON(t, r, http.MethodPost, "/api/signup", map[string]string{
			"email":    email,
			"password": "samepassword1",
		}, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("signup %s: status %d", email, w.Code)
		}
	}

	var users []models.User
	db.Order("id ASC").Find(&users)
	if len(users) != 2 {
		t.Fatalf("user count = %d, want 2", len(users))
	}
	if users[0].PasswordHash == users[1].PasswordHash {
		t.Error("equal plaintexts must not produce equal hashes")
	}
}
