package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Karann1101/sahyadri-guardian/internal/config"
	"github.com/Karann1101/sahyadri-guardian/internal/models"
	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Login failures share one message so the API does not reveal which emails
// are registered.
const invalidCredentialsMsg = "Invalid credentials"

// AuthHandler serves signup, login, logout and session verification.
type AuthHandler struct {
	DB             *gorm.DB
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	PasswordMinLen int
	SecureCookie   bool
}

// NewAuthHandler builds an AuthHandler from configuration.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	ttlHours := cfg.JWT.ExpireHours
	if ttlHours <= 0 {
		ttlHours = 7 * 24
	}
	return &AuthHandler{
		DB:             db,
		JWTSecret:      cfg.JWT.Secret,
		TokenTTL:       time.Duration(ttlHours) * time.Hour,
		BcryptCost:     cfg.Security.BcryptCost,
		PasswordMinLen: cfg.Security.PasswordMinLen,
		SecureCookie:   cfg.Server.Mode == "release",
	}
}

// setSessionCookie attaches the signed token as an HTTP-only cookie.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(util.AuthCookieName, token, int(h.TokenTTL.Seconds()), "/", "", h.SecureCookie, true)
}

func publicUser(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"displayName": u.DisplayName,
	}
}

// ---------- signup ----------

type signupReq struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName" binding:"max=64"`
}

// Signup registers a new account and signs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	email := util.NormalizeEmail(req.Email)
	if err := util.ValidateEmail(email); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if err := util.ValidatePassword(req.Password, h.PasswordMinLen); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	// Friendly pre-check. Emails are stored normalized, so an exact match is
	// a case-insensitive match; the unique index closes the remaining race.
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		util.ServerError(c, err)
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.ServerError(c, err)
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		// default to the email local part, as the web client expects
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the check-then-insert race; same answer as the pre-check
			util.Error(c, http.StatusBadRequest, "User already exists")
			return
		}
		util.ServerError(c, err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Email, h.TokenTTL)
	if err != nil {
		util.ServerError(c, err)
		return
	}
	h.setSessionCookie(c, token)

	util.Created(c, util.Response{
		"message": "User registered successfully",
		"user":    publicUser(&user),
	})
}

// ---------- login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a session token. Unknown email,
// wrong password and deactivated account all return the same 401 payload.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	email := util.NormalizeEmail(req.Email)

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnauthorized, invalidCredentialsMsg)
		} else {
			util.ServerError(c, err)
		}
		return
	}

	if !user.IsActive {
		util.Error(c, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := h.DB.Model(&user).Update("last_login_at", &now).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	event := models.LoginEvent{UserID: user.ID, Email: user.Email}
	if err := h.DB.Create(&event).Error; err != nil {
		util.ServerError(c, err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Email, h.TokenTTL)
	if err != nil {
		util.ServerError(c, err)
		return
	}
	h.setSessionCookie(c, token)

	resp := publicUser(&user)
	resp["role"] = user.Role
	util.Success(c, util.Response{
		"message": "Login successful",
		"user":    resp,
	})
}

// ---------- session ----------

// Me verifies the session cookie and returns the caller's identity. It does
// its own token resolution so the web client can poll it before any user is
// established.
func (h *AuthHandler) Me(c *gin.Context) {
	tokenStr, err := c.Cookie(util.AuthCookieName)
	if err != nil || tokenStr == "" {
		// Bearer fallback for non-browser clients
		authHeader := c.GetHeader("Authorization")
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = parts[1]
		}
	}
	if tokenStr == "" {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	claims, err := util.ParseToken(h.JWTSecret, tokenStr)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	var user models.User
	if err := h.DB.Omit("password_hash").First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.ServerError(c, err)
		}
		return
	}

	util.Success(c, util.Response{
		"user": publicUser(&user),
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(util.AuthCookieName, "", -1, "/", "", h.SecureCookie, true)
	util.Success(c, util.Response{
		"message": "Logged out",
	})
}
