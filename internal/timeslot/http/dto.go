package http

import (
	"github.com/nekogravitycat/lab-reservation-backend/internal/timeslot"
)

type TimeSlotResponse struct {
	ID           string `json:"id"`
	LaboratoryID string `json:"laboratory_id"`
	Weekday      int    `json:"weekday"`
	WeekdayName  string `json:"weekday_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsAvailable  bool   `json:"is_available"`
}

func NewTimeSlotResponse(s *timeslot.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:           s.ID,
		LaboratoryID: s.LaboratoryID,
		Weekday:      s.Weekday,
		WeekdayName:  s.WeekdayName(),
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		IsAvailable:  s.IsAvailable,
	}
}

type CreateTimeSlotRequest struct {
	LaboratoryID string `json:"laboratory_id" binding:"required,uuid"`
	Weekday      *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	IsAvailable  *bool  `json:"is_available"`
}

type UpdateTimeSlotRequest struct {
	Weekday     *int    `json:"weekday" binding:"omitempty,min=0,max=6"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	IsAvailable *bool   `json:"is_available"`
}
