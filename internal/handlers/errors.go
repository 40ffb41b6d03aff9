package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/services"
)

var errInvalidID = errors.New("invalid id")

// validatable запрос, умеющий проверить сам себя
type validatable interface {
	Validate() error
}

// statusOf сопоставляет доменные ошибки с HTTP статусами; 0 значит внутренняя ошибка
func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrTargetNotFound),
		errors.Is(err, services.ErrLikeNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrPasswordTooLong),
		errors.Is(err, services.ErrSelfRequest),
		errors.Is(err, services.ErrRequestPending),
		errors.Is(err, services.ErrAlreadyFriends),
		errors.Is(err, services.ErrRequestExists),
		errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrInvalidAvatarKey),
		errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAvatarsDisabled):
		return http.StatusServiceUnavailable
	}
	return 0
}

// respondError пишет ответ об ошибке; внутренние ошибки логируются, клиенту уходит общий текст
func respondError(c *gin.Context, log logging.Logger, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": verrs})
		return
	}

	if status := statusOf(err); status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}

	_ = c.Error(err)
	log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// bindJSON читает тело и прогоняет Validate
func bindJSON(c *gin.Context, log logging.Logger, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := req.Validate(); err != nil {
		respondError(c, log, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, log logging.Logger, req validatable) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return false
	}
	if err := req.Validate(); err != nil {
		respondError(c, log, err)
		return false
	}
	return true
}

// paramID разбирает положительный числовой параметр пути
func paramID(c *gin.Context, log logging.Logger, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, log, errInvalidID)
		return 0, false
	}
	return uint(id), true
}
