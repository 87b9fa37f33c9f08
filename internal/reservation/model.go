package reservation

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "reservation not found")
	ErrLaboratoryNotFound = apperror.New(http.StatusNotFound, "laboratory not found")
	ErrTimeConflict       = apperror.New(http.StatusConflict, "the requested time range is already reserved")
	ErrInvalidTimeRange   = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrDatePast           = apperror.New(http.StatusBadRequest, "cannot reserve a past date")
	ErrInvalidTime        = apperror.New(http.StatusBadRequest, "times must be given as HH:MM")
	ErrInvalidDate        = apperror.New(http.StatusBadRequest, "date must be given as YYYY-MM-DD")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid reservation status")
	ErrNotPending         = apperror.New(http.StatusBadRequest, "reservation is not pending review")
	ErrNotCancellable     = apperror.New(http.StatusBadRequest, "reservation can no longer be cancelled")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	// StatusCompleted is reserved for a future archival job; nothing in the
	// service sets it.
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether the status counts as a claim on the time range for
// conflict detection.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// Reservation is a user's claim on a laboratory for a date and time range.
type Reservation struct {
	ID             string
	UserID         string
	UserName       string
	LaboratoryID   string
	LaboratoryName string
	Date           time.Time // calendar date, UTC midnight
	StartTime      clock.TimeOfDay
	EndTime        clock.TimeOfDay
	Purpose        string
	Status         Status
	AdminComment   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPast reports whether the reserved date is before today.
func (r *Reservation) IsPast() bool {
	return r.Date.Before(clock.Today())
}

// CanCancel reports whether the owning user may still cancel.
func (r *Reservation) CanCancel() bool {
	return r.Status.Active() && !r.IsPast()
}

// Filter defines parameters for listing reservations.
type Filter struct {
	UserID       string
	LaboratoryID string
	Status       string
	DateFrom     *time.Time
	DateTo       *time.Time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
