package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/rythmrun/internal/handlers/dto"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/middleware"
	"github.com/thereayou/rythmrun/internal/services"
)

type ActivityHandler struct {
	activities *services.ActivityService
	log        logging.Logger
}

func NewActivityHandler(activities *services.ActivityService, log logging.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, log: log}
}

func (h *ActivityHandler) Create(c *gin.Context) {
	var req dto.CreateActivityRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	activity, err := h.activities.Create(c.Request.Context(), middleware.UserID(c), req.Input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// List активности текущего пользователя с пагинацией
func (h *ActivityHandler) List(c *gin.Context) {
	var q dto.ActivityListQuery
	if !bindQuery(c, h.log, &q) {
		return
	}

	page, err := h.activities.List(c.Request.Context(), middleware.UserID(c), q.Query())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ActivityHandler) Get(c *gin.Context) {
	id, ok := paramID(c, h.log, "activityId")
	if !ok {
		return
	}

	activity, err := h.activities.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *ActivityHandler) Update(c *gin.Context) {
	id, ok := paramID(c, h.log, "activityId")
	if !ok {
		return
	}
	var req dto.UpdateActivityRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	activity, err := h.activities.Update(c.Request.Context(), middleware.UserID(c), id, req.Patch())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, h.log, "activityId")
	if !ok {
		return
	}

	if err := h.activities.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}
