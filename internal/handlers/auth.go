package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vestiba/vestiba-backend/internal/requestdata"
	"github.com/vestiba/vestiba-backend/internal/services"
	"github.com/vestiba/vestiba-backend/internal/session"
)

type AuthHandler struct {
	svc      services.AuthService
	registry *session.Registry
}

func NewAuthHandler(svc services.AuthService, registry *session.Registry) *AuthHandler {
	return &AuthHandler{svc: svc, registry: registry}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "register_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	accessToken, refreshToken, err := h.svc.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "login_failed", err)
		return
	}
	RespondOK(c, gin.H{"access_token": accessToken, "refresh_token": refreshToken})
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	accessToken, refreshToken, err := h.svc.Refresh(c.Request.Context(), body.RefreshToken)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "refresh_failed", err)
		return
	}
	RespondOK(c, gin.H{"access_token": accessToken, "refresh_token": refreshToken})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if err := h.svc.Logout(c.Request.Context(), userID); err != nil {
		RespondError(c, http.StatusInternalServerError, "logout_failed", err)
		return
	}
	// The session store is scoped to the identity; drop it so the next
	// sign-in starts from backend truth.
	h.registry.Drop(userID)
	RespondOK(c, gin.H{"status": "logged out"})
}
