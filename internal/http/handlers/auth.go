package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/investfolio/investfolio-backend/internal/http/response"
	"github.com/investfolio/investfolio-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			response.RespondError(c, http.StatusConflict, "username_taken", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "registration_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{
		"id":       user.ID.String(),
		"username": user.Username,
	})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, user, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "login_failed", err)
		return
	}
	// The password never leaves: the model's json tag drops it.
	payload := gin.H{
		"auth":  true,
		"token": token,
		"user":  user,
	}
	if ttl := ah.authService.GetAccessTTL(); ttl > 0 {
		payload["expires_in"] = int(ttl.Seconds())
	}
	response.RespondOK(c, payload)
}
