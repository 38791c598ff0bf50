package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/auth"
	apperrors "github.com/TestimonyAdegoke/montessa-sub000/internal/errors"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/models"
)

// LoginRateLimiter tracks failed login attempts per identifier
type LoginRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*loginAttempts
}

type loginAttempts struct {
	count        int
	firstAttempt time.Time
	blockedUntil time.Time
}

const (
	maxLoginAttempts = 5
	attemptWindow    = 5 * time.Minute
	blockDuration    = 15 * time.Minute
)

// NewLoginRateLimiter creates a rate limiter and starts its cleanup loop
func NewLoginRateLimiter() *LoginRateLimiter {
	rl := &LoginRateLimiter{attempts: make(map[string]*loginAttempts)}
	go rl.cleanup()
	return rl
}

func (rl *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, a := range rl.attempts {
			if now.Sub(a.firstAttempt) > attemptWindow && now.After(a.blockedUntil) {
				delete(rl.attempts, key)
			}
		}
		rl.mu.Unlock()
	}
}

// IsBlocked reports whether an identifier is currently blocked
func (rl *LoginRateLimiter) IsBlocked(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	a, ok := rl.attempts[key]
	if !ok {
		return false
	}
	return time.Now().Before(a.blockedUntil)
}

// RecordFailure records a failed login attempt
func (rl *LoginRateLimiter) RecordFailure(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := time.Now()
	a, ok := rl.attempts[key]
	if !ok || now.Sub(a.firstAttempt) > attemptWindow {
		rl.attempts[key] = &loginAttempts{count: 1, firstAttempt: now}
		return
	}
	a.count++
	if a.count >= maxLoginAttempts {
		a.blockedUntil = now.Add(blockDuration)
	}
}

// RecordSuccess clears attempts for an identifier
func (rl *LoginRateLimiter) RecordSuccess(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, key)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	db          *gorm.DB
	jwtService  *auth.JWTService
	rateLimiter *LoginRateLimiter
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		db:          db,
		jwtService:  jwtService,
		rateLimiter: NewLoginRateLimiter(),
	}
}

// LoginRequest is the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Tenant   string `json:"tenant" binding:"required"`
}

// Login authenticates a user and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	key := strings.ToLower(req.Email) + "@" + req.Tenant
	if h.rateLimiter.IsBlocked(key) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many failed attempts, try again later"})
		return
	}

	var tenant models.Tenant
	if err := h.db.Where("code = ? AND is_active = ?", req.Tenant, true).First(&tenant).Error; err != nil {
		h.rateLimiter.RecordFailure(key)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	var user models.User
	err := h.db.Preload("Roles").
		Where("tenant_id = ? AND email = ? AND is_active = ?", tenant.ID, strings.ToLower(req.Email), true).
		First(&user).Error
	if err != nil {
		h.rateLimiter.RecordFailure(key)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.rateLimiter.RecordFailure(key)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.rateLimiter.RecordSuccess(key)

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Code)
	}

	tokens, err := h.jwtService.GenerateTokenPair(user.ID, tenant.ID, user.Email, roles)
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to generate tokens", err))
		c.JSON(status, body)
		return
	}

	now := time.Now()
	h.db.Model(&user).Update("last_login_at", &now)

	c.JSON(http.StatusOK, gin.H{
		"tokens": tokens,
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"roles":      roles,
			"tenant":     tenant.Code,
		},
	})
}

// RefreshRequest is the refresh token request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	claims, err := h.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	var user models.User
	err = h.db.Preload("Roles").
		Where("id = ? AND is_active = ?", claims.UserID, true).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user no longer active"})
		return
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Code)
	}

	tokens, err := h.jwtService.GenerateTokenPair(user.ID, claims.TenantID, user.Email, roles)
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to generate tokens", err))
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// GetMe returns the authenticated user profile
func (h *AuthHandler) GetMe(c *gin.Context) {
	claims := MustClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var user models.User
	if err := h.db.Preload("Roles").First(&user, "id = ?", claims.UserID).Error; err != nil {
		status, body := apperrors.ToHTTPError(apperrors.NotFound("user"))
		c.JSON(status, body)
		return
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Code)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"roles":      roles,
		"tenant_id":  claims.TenantID,
	})
}

// ChangePasswordRequest is the change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword updates the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := MustClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		status, body := apperrors.ToHTTPError(apperrors.NotFound("user"))
		c.JSON(status, body)
		return
	}

	if !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to hash password", err))
		c.JSON(status, body)
		return
	}

	if err := h.db.Model(&user).Update("password_hash", hash).Error; err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to update password", err))
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// RegisterRequest is the user registration body
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role"`
}

// Register creates a new user inside the caller's tenant. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	claims := MustClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	email := strings.ToLower(req.Email)
	var count int64
	h.db.Model(&models.User{}).Where("tenant_id = ? AND email = ?", claims.TenantID, email).Count(&count)
	if count > 0 {
		status, body := apperrors.ToHTTPError(apperrors.Conflict("a user with this email already exists"))
		c.JSON(status, body)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to hash password", err))
		c.JSON(status, body)
		return
	}

	user := models.User{
		TenantID:     claims.TenantID,
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		status, body := apperrors.ToHTTPError(apperrors.Internal("failed to create user", err))
		c.JSON(status, body)
		return
	}

	if req.Role != "" {
		var role models.Role
		if err := h.db.Where("tenant_id = ? AND code = ?", claims.TenantID, req.Role).First(&role).Error; err == nil {
			h.db.Model(&user).Association("Roles").Append(&role)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// Logout acknowledges a logout. Tokens are stateless so the client discards them.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
