package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/rythmrun/internal/handlers/dto"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/middleware"
	"github.com/thereayou/rythmrun/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
	log      logging.Logger
}

func NewCommentHandler(comments *services.CommentService, log logging.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

func (h *CommentHandler) List(c *gin.Context) {
	activityID, ok := paramID(c, h.log, "activityId")
	if !ok {
		return
	}

	comments, err := h.comments.List(c.Request.Context(), middleware.UserID(c), activityID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *CommentHandler) Get(c *gin.Context) {
	activityID, commentID, ok := h.ids(c)
	if !ok {
		return
	}

	comment, err := h.comments.Get(c.Request.Context(), middleware.UserID(c), activityID, commentID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Create(c *gin.Context) {
	activityID, ok := paramID(c, h.log, "activityId")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), middleware.UserID(c), activityID, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update править может только автор
func (h *CommentHandler) Update(c *gin.Context) {
	activityID, commentID, ok := h.ids(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), middleware.UserID(c), activityID, commentID, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	activityID, commentID, ok := h.ids(c)
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), middleware.UserID(c), activityID, commentID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

func (h *CommentHandler) ids(c *gin.Context) (uint, uint, bool) {
	activityID, ok := paramID(c, h.log, "activityId")
	if !ok {
		return 0, 0, false
	}
	commentID, ok := paramID(c, h.log, "commentId")
	if !ok {
		return 0, 0, false
	}
	return activityID, commentID, true
}
