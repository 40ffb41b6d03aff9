package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/rythmrun/internal/handlers/dto"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/middleware"
	"github.com/thereayou/rythmrun/internal/models"
	"github.com/thereayou/rythmrun/internal/services"
)

type UserHandler struct {
	users *services.UserService
	log   logging.Logger
}

func NewUserHandler(users *services.UserService, log logging.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// publicUser то, что видно о чужом пользователе
func publicUser(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"firstname":  u.Firstname,
		"lastname":   u.Lastname,
		"hasAvatar":  u.HasAvatar(),
		"lastSeenAt": u.LastSeenAt,
	}
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile меняет только переданные поля
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), services.ProfileInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser возвращает публичную информацию о пользователе по ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, h.log, "id")
	if !ok {
		return
	}

	user, err := h.users.Me(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, publicUser(user))
}

// SearchUsers поиск пользователей по username
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	users, err := h.users.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	result := make([]gin.H, len(users))
	for i := range users {
		result[i] = publicUser(&users[i])
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

// AvatarUploadURL выдаёт presigned PUT; после загрузки клиент вызывает confirm
func (h *UserHandler) AvatarUploadURL(c *gin.Context) {
	var req dto.AvatarUploadRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	upload, err := h.users.AvatarUploadURL(c.Request.Context(), middleware.UserID(c), req.Ext, req.ContentType)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}

func (h *UserHandler) ConfirmAvatar(c *gin.Context) {
	var req dto.AvatarConfirmRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	if err := h.users.ConfirmAvatar(c.Request.Context(), middleware.UserID(c), req.Key, req.ContentType); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "avatar updated"})
}

// GetAvatar отдаёт ссылку на аватар пользователя
func (h *UserHandler) GetAvatar(c *gin.Context) {
	id, ok := paramID(c, h.log, "id")
	if !ok {
		return
	}

	url, err := h.users.AvatarURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
