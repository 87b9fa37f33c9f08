package timeslot

import (
	"net/http"

	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "time slot not found")
	ErrInvalidWeekday   = apperror.New(http.StatusBadRequest, "weekday must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrDuplicateSlot    = apperror.New(http.StatusConflict, "a slot with the same laboratory, weekday and start time already exists")
)

// TimeSlot is a recurring bookable window template for a laboratory.
// Slots are informational: reservations are validated against other
// reservations, not against slot templates.
type TimeSlot struct {
	ID           string
	LaboratoryID string
	Weekday      int // 0 = Monday ... 6 = Sunday
	StartTime    clock.TimeOfDay
	EndTime      clock.TimeOfDay
	IsAvailable  bool
}

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayName returns the English name for the slot's weekday.
func (s *TimeSlot) WeekdayName() string {
	if s.Weekday < 0 || s.Weekday > 6 {
		return ""
	}
	return weekdayNames[s.Weekday]
}
