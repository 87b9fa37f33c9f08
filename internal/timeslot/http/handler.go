package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/response"
	"github.com/nekogravitycat/lab-reservation-backend/internal/timeslot"
)

type Handler struct {
	service timeslot.Service
}

func NewHandler(service timeslot.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListByLaboratory(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	// The public view only lists bookable slots.
	slots, err := h.service.ListByLaboratory(c.Request.Context(), req.ID, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TimeSlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewTimeSlotResponse(s)
	}

	c.JSON(http.StatusOK, gin.H{"slots": items})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	available := true
	if body.IsAvailable != nil {
		available = *body.IsAvailable
	}

	slot, err := h.service.Create(c.Request.Context(), timeslot.CreateRequest{
		LaboratoryID: body.LaboratoryID,
		Weekday:      *body.Weekday,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		IsAvailable:  available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTimeSlotResponse(slot))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slot, err := h.service.Update(c.Request.Context(), uri.ID, timeslot.UpdateRequest{
		Weekday:     body.Weekday,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		IsAvailable: body.IsAvailable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTimeSlotResponse(slot))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
