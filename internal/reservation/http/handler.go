package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/lab-reservation-backend/internal/auth"
	labHttp "github.com/nekogravitycat/lab-reservation-backend/internal/laboratory/http"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/response"
	"github.com/nekogravitycat/lab-reservation-backend/internal/reservation"
	slotHttp "github.com/nekogravitycat/lab-reservation-backend/internal/timeslot/http"
	"github.com/nekogravitycat/lab-reservation-backend/internal/user"
)

type Handler struct {
	service     reservation.Service
	userService user.Service
}

func NewHandler(service reservation.Service, userService user.Service) *Handler {
	return &Handler{service: service, userService: userService}
}

// actorFrom resolves the authenticated caller into an explicit actor.
func (h *Handler) actorFrom(c *gin.Context) reservation.Actor {
	userID := auth.GetUserID(c)
	actor := reservation.Actor{UserID: userID}
	if userID == "" {
		return actor
	}
	if u, err := h.userService.GetByID(c.Request.Context(), userID); err == nil {
		actor.IsStaff = u.IsStaff
	}
	return actor
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := reservation.Filter{
		UserID:       req.UserID,
		LaboratoryID: req.LaboratoryID,
		Status:       req.Status,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}

	if req.DateFrom != "" {
		d, err := clock.ParseDate(req.DateFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_from"})
			return
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := clock.ParseDate(req.DateTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_to"})
			return
		}
		filter.DateTo = &d
	}

	list, total, err := h.service.List(c.Request.Context(), h.actorFrom(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(list))
	for i, r := range list {
		items[i] = NewReservationResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), h.actorFrom(c), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor := h.actorFrom(c)
	if actor.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := h.service.Create(c.Request.Context(), actor, reservation.CreateRequest{
		LaboratoryID: body.LaboratoryID,
		Date:         body.Date,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		Purpose:      body.Purpose,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(res))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), h.actorFrom(c), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

func (h *Handler) decide(c *gin.Context, apply func(ctx context.Context, actor reservation.Actor, id, comment string) (*reservation.Reservation, error)) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	// The comment body is optional.
	var body DecisionRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := apply(c.Request.Context(), h.actorFrom(c), req.ID, body.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	labID := c.Query("laboratory_id")
	date := c.Query("date")
	start := c.Query("start_time")
	end := c.Query("end_time")

	if labID == "" || date == "" || start == "" || end == "" {
		c.JSON(http.StatusOK, AvailabilityResponse{Available: false, Message: "missing query parameters"})
		return
	}

	avail, err := h.service.CheckAvailability(c.Request.Context(), labID, date, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Available: avail.Available, Message: avail.Message})
}

func (h *Handler) Schedule(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	sched, err := h.service.ScheduleForLaboratory(c.Request.Context(), req.ID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := ScheduleResponse{
		Laboratory: labHttp.LaboratoryTag{ID: sched.Laboratory.ID, Name: sched.Laboratory.Name},
	}
	for _, d := range sched.Dates {
		resp.Dates = append(resp.Dates, clock.FormatDate(d))
	}
	resp.Slots = make([]slotHttp.TimeSlotResponse, len(sched.Slots))
	for i, s := range sched.Slots {
		resp.Slots[i] = slotHttp.NewTimeSlotResponse(s)
	}
	resp.Reservations = make([]ScheduleEntry, len(sched.Reservations))
	for i, r := range sched.Reservations {
		resp.Reservations[i] = ScheduleEntry{
			Date:      clock.FormatDate(r.Date),
			StartTime: r.StartTime.String(),
			EndTime:   r.EndTime.String(),
		}
	}

	c.JSON(http.StatusOK, resp)
}
