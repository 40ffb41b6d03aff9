package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/rythmrun/internal/handlers/dto"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/middleware"
	"github.com/thereayou/rythmrun/internal/services"
)

type FriendHandler struct {
	friends *services.FriendService
	log     logging.Logger
}

func NewFriendHandler(friends *services.FriendService, log logging.Logger) *FriendHandler {
	return &FriendHandler{friends: friends, log: log}
}

// SendRequest создаёт заявку в статусе PENDING
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var req dto.FriendRequestRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	fr, err := h.friends.Request(c.Request.Context(), middleware.UserID(c), req.TargetUserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, fr)
}

// CancelRequest отзыв своей ещё не принятой заявки
func (h *FriendHandler) CancelRequest(c *gin.Context) {
	id, ok := paramID(c, h.log, "id")
	if !ok {
		return
	}

	if err := h.friends.Cancel(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friend request cancelled"})
}

func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	id, ok := paramID(c, h.log, "id")
	if !ok {
		return
	}

	fr, err := h.friends.Accept(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, fr)
}

func (h *FriendHandler) RejectRequest(c *gin.Context) {
	id, ok := paramID(c, h.log, "id")
	if !ok {
		return
	}

	fr, err := h.friends.Reject(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, fr)
}

// PendingRequests входящие заявки, новые первыми
func (h *FriendHandler) PendingRequests(c *gin.Context) {
	requests, err := h.friends.ListPending(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *FriendHandler) Status(c *gin.Context) {
	other, ok := paramID(c, h.log, "userId")
	if !ok {
		return
	}

	status, err := h.friends.StatusBetween(c.Request.Context(), middleware.UserID(c), other)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	friends, err := h.friends.ListFriends(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}
