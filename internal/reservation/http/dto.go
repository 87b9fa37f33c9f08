package http

import (
	"time"

	labHttp "github.com/nekogravitycat/lab-reservation-backend/internal/laboratory/http"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/lab-reservation-backend/internal/reservation"
	slotHttp "github.com/nekogravitycat/lab-reservation-backend/internal/timeslot/http"
)

type ReservationResponse struct {
	ID           string                `json:"id"`
	User         UserTag               `json:"user"`
	Laboratory   labHttp.LaboratoryTag `json:"laboratory"`
	Date         string                `json:"date"`
	StartTime    string                `json:"start_time"`
	EndTime      string                `json:"end_time"`
	Purpose      string                `json:"purpose"`
	Status       string                `json:"status"`
	AdminComment string                `json:"admin_comment"`
	CanCancel    bool                  `json:"can_cancel"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// UserTag is the minimal user reference embedded in reservation responses.
type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		User:         UserTag{ID: r.UserID, Name: r.UserName},
		Laboratory:   labHttp.LaboratoryTag{ID: r.LaboratoryID, Name: r.LaboratoryName},
		Date:         clock.FormatDate(r.Date),
		StartTime:    r.StartTime.String(),
		EndTime:      r.EndTime.String(),
		Purpose:      r.Purpose,
		Status:       string(r.Status),
		AdminComment: r.AdminComment,
		CanCancel:    r.CanCancel(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ListReservationsRequest struct {
	request.ListParams
	LaboratoryID string `form:"laboratory_id" binding:"omitempty,uuid"`
	UserID       string `form:"user_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled completed"`
	DateFrom     string `form:"date_from"`
	DateTo       string `form:"date_to"`
	SortBy       string `form:"sort_by" binding:"omitempty,oneof=date start_time created_at status"`
}

type CreateReservationRequest struct {
	LaboratoryID string `json:"laboratory_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Purpose      string `json:"purpose" binding:"required"`
}

type DecisionRequest struct {
	Comment string `json:"comment"`
}

// AvailabilityResponse mirrors the availability probe shape consumed by the
// booking form.
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type ScheduleResponse struct {
	Laboratory   labHttp.LaboratoryTag       `json:"laboratory"`
	Dates        []string                    `json:"dates"`
	Slots        []slotHttp.TimeSlotResponse `json:"slots"`
	Reservations []ScheduleEntry             `json:"reservations"`
}

// ScheduleEntry exposes only the occupied window, not who holds it.
type ScheduleEntry struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
