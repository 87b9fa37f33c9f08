package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
	"github.com/nekogravitycat/lab-reservation-backend/internal/timeslot"
)

// Actor identifies who is performing a lifecycle operation. It is passed
// explicitly so authorization never depends on ambient request state.
type Actor struct {
	UserID  string
	IsStaff bool
}

type CreateRequest struct {
	LaboratoryID string
	Date         string // YYYY-MM-DD
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	Purpose      string
}

// Availability is the result of a read-only conflict probe.
type Availability struct {
	Available bool
	Message   string
}

// Schedule is a laboratory's bookable windows plus its active claims for the
// coming days.
type Schedule struct {
	Laboratory   *laboratory.Laboratory
	Dates        []time.Time
	Slots        []*timeslot.TimeSlot
	Reservations []*Reservation
}

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, actor Actor, id string) (*Reservation, error)
	List(ctx context.Context, actor Actor, filter Filter) ([]*Reservation, int, error)

	// Cancel moves a pending or approved reservation to cancelled. Only the
	// owning user may cancel, and only while the date has not passed.
	Cancel(ctx context.Context, actor Actor, id string) (*Reservation, error)
	// Approve moves a pending reservation to approved. Staff only.
	Approve(ctx context.Context, actor Actor, id, comment string) (*Reservation, error)
	// Reject moves a pending reservation to rejected. Staff only.
	Reject(ctx context.Context, actor Actor, id, comment string) (*Reservation, error)

	// CheckAvailability runs the same conflict predicate used on creation,
	// without side effects.
	CheckAvailability(ctx context.Context, laboratoryID, date, startTime, endTime string) (*Availability, error)
	// ScheduleForLaboratory returns slots and active reservations for the
	// next `days` days starting today.
	ScheduleForLaboratory(ctx context.Context, laboratoryID string, days int) (*Schedule, error)

	// CountByStatus is used by the admin dashboard.
	CountByStatus(ctx context.Context, status Status) (int, error)
}

type service struct {
	repo        Repository
	labService  laboratory.Service
	slotService timeslot.Service
}

func NewService(repo Repository, labService laboratory.Service, slotService timeslot.Service) Service {
	return &service{
		repo:        repo,
		labService:  labService,
		slotService: slotService,
	}
}

// parseWindow validates and parses the date and time range shared by Create
// and CheckAvailability so both enforce identical rules.
func parseWindow(dateStr, startStr, endStr string) (date time.Time, start, end clock.TimeOfDay, err error) {
	date, err = clock.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, 0, 0, ErrInvalidDate
	}

	start, err = clock.ParseTimeOfDay(startStr)
	if err != nil {
		return time.Time{}, 0, 0, ErrInvalidTime
	}
	end, err = clock.ParseTimeOfDay(endStr)
	if err != nil {
		return time.Time{}, 0, 0, ErrInvalidTime
	}

	if !start.Before(end) {
		return time.Time{}, 0, 0, ErrInvalidTimeRange
	}
	return date, start, end, nil
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateRequest) (*Reservation, error) {
	date, start, end, err := parseWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if date.Before(clock.Today()) {
		return nil, ErrDatePast
	}

	// Only active laboratories are bookable.
	if _, err := s.labService.GetByID(ctx, req.LaboratoryID, false); err != nil {
		if errors.Is(err, laboratory.ErrNotFound) {
			return nil, ErrLaboratoryNotFound
		}
		return nil, err
	}

	res := &Reservation{
		UserID:       actor.UserID,
		LaboratoryID: req.LaboratoryID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		Purpose:      req.Purpose,
		Status:       StatusPending,
	}

	// The repository re-checks the conflict inside the insert transaction.
	if err := s.repo.CreateIfFree(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.UserID != actor.UserID && !actor.IsStaff {
		return nil, ErrPermissionDenied
	}
	return res, nil
}

func (s *service) List(ctx context.Context, actor Actor, filter Filter) ([]*Reservation, int, error) {
	// Non-staff users only ever see their own reservations.
	if !actor.IsStaff {
		filter.UserID = actor.UserID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, actor Actor, id string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.UserID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	if !res.CanCancel() {
		return nil, ErrNotCancellable
	}

	res.Status = StatusCancelled
	if err := s.repo.UpdateStatus(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// decide applies an administrator decision on a pending reservation.
func (s *service) decide(ctx context.Context, actor Actor, id string, to Status, comment string) (*Reservation, error) {
	if !actor.IsStaff {
		return nil, ErrPermissionDenied
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != StatusPending {
		return nil, ErrNotPending
	}

	res.Status = to
	res.AdminComment = comment
	if err := s.repo.UpdateStatus(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Approve(ctx context.Context, actor Actor, id, comment string) (*Reservation, error) {
	return s.decide(ctx, actor, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, actor Actor, id, comment string) (*Reservation, error) {
	return s.decide(ctx, actor, id, StatusRejected, comment)
}

func (s *service) CheckAvailability(ctx context.Context, laboratoryID, dateStr, startStr, endStr string) (*Availability, error) {
	date, start, end, err := parseWindow(dateStr, startStr, endStr)
	if err != nil {
		return nil, err
	}

	if _, err := s.labService.GetByID(ctx, laboratoryID, false); err != nil {
		if errors.Is(err, laboratory.ErrNotFound) {
			return nil, ErrLaboratoryNotFound
		}
		return nil, err
	}

	conflict, err := s.repo.HasConflict(ctx, laboratoryID, date, start, end, "")
	if err != nil {
		return nil, err
	}

	if conflict {
		return &Availability{Available: false, Message: "the time range is already reserved"}, nil
	}
	return &Availability{Available: true, Message: "the time range is available"}, nil
}

func (s *service) ScheduleForLaboratory(ctx context.Context, laboratoryID string, days int) (*Schedule, error) {
	if days < 1 || days > 31 {
		days = 7
	}

	lab, err := s.labService.GetByID(ctx, laboratoryID, false)
	if err != nil {
		if errors.Is(err, laboratory.ErrNotFound) {
			return nil, ErrLaboratoryNotFound
		}
		return nil, err
	}

	slots, err := s.slotService.ListByLaboratory(ctx, laboratoryID, true)
	if err != nil {
		return nil, err
	}

	today := clock.Today()
	last := today.AddDate(0, 0, days-1)

	reservations, err := s.repo.ListActiveForRange(ctx, laboratoryID, today, last)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i)
	}

	return &Schedule{
		Laboratory:   lab,
		Dates:        dates,
		Slots:        slots,
		Reservations: reservations,
	}, nil
}

func (s *service) CountByStatus(ctx context.Context, status Status) (int, error) {
	if !status.Valid() {
		return 0, ErrInvalidStatus
	}
	return s.repo.CountByStatus(ctx, status)
}
