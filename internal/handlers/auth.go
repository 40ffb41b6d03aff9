package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/rythmrun/internal/handlers/dto"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/middleware"
	"github.com/thereayou/rythmrun/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
	log  logging.Logger
}

func NewAuthHandler(auth *services.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Register создаёт пользователя и сразу открывает сессию
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	res, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// Login выдаёт пару токенов и заменяет прежнюю сессию
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Refresh обменивает refresh токен на новую пару; старый токен больше не действует
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), middleware.UserID(c), req.RefreshToken)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout удаляет refresh сессию; access токен доживает свой срок
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
