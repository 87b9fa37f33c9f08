package timeslot

import (
	"context"

	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
)

type CreateRequest struct {
	LaboratoryID string
	Weekday      int
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	IsAvailable  bool
}

type UpdateRequest struct {
	Weekday     *int
	StartTime   *string
	EndTime     *string
	IsAvailable *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*TimeSlot, error)
	GetByID(ctx context.Context, id string) (*TimeSlot, error)
	// ListByLaboratory returns the laboratory's slot templates.
	// availableOnly limits the result to slots flagged bookable.
	ListByLaboratory(ctx context.Context, laboratoryID string, availableOnly bool) ([]*TimeSlot, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*TimeSlot, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	labService laboratory.Service
}

func NewService(repo Repository, labService laboratory.Service) Service {
	return &service{repo: repo, labService: labService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*TimeSlot, error) {
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	start, err := clock.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end, err := clock.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	// Slots may be defined for inactive labs so schedules survive a
	// temporary deactivation.
	if _, err := s.labService.GetByID(ctx, req.LaboratoryID, true); err != nil {
		return nil, err
	}

	slot := &TimeSlot{
		LaboratoryID: req.LaboratoryID,
		Weekday:      req.Weekday,
		StartTime:    start,
		EndTime:      end,
		IsAvailable:  req.IsAvailable,
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*TimeSlot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByLaboratory(ctx context.Context, laboratoryID string, availableOnly bool) ([]*TimeSlot, error) {
	return s.repo.ListByLaboratory(ctx, laboratoryID, availableOnly)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*TimeSlot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Weekday != nil {
		if *req.Weekday < 0 || *req.Weekday > 6 {
			return nil, ErrInvalidWeekday
		}
		slot.Weekday = *req.Weekday
	}
	if req.StartTime != nil {
		start, err := clock.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeRange
		}
		slot.StartTime = start
	}
	if req.EndTime != nil {
		end, err := clock.ParseTimeOfDay(*req.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeRange
		}
		slot.EndTime = end
	}
	if !slot.StartTime.Before(slot.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
