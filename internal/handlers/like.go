package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/middleware"
	"github.com/thereayou/rythmrun/internal/services"
)

type LikeHandler struct {
	likes *services.LikeService
	log   logging.Logger
}

func NewLikeHandler(likes *services.LikeService, log logging.Logger) *LikeHandler {
	return &LikeHandler{likes: likes, log: log}
}

func (h *LikeHandler) Status(c *gin.Context) {
	h.handle(c, http.StatusOK, h.likes.Status)
}

func (h *LikeHandler) Like(c *gin.Context) {
	h.handle(c, http.StatusCreated, h.likes.Like)
}

func (h *LikeHandler) Unlike(c *gin.Context) {
	h.handle(c, http.StatusOK, h.likes.Unlike)
}

type likeOp func(ctx context.Context, callerID, activityID uint) (*services.LikeStatus, error)

func (h *LikeHandler) handle(c *gin.Context, status int, op likeOp) {
	activityID, ok := paramID(c, h.log, "activityId")
	if !ok {
		return
	}

	res, err := op(c.Request.Context(), middleware.UserID(c), activityID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(status, res)
}
