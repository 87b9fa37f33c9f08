package timeslot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
)

type fakeRepo struct {
	slots  map[string]*TimeSlot
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slots: make(map[string]*TimeSlot)}
}

func (f *fakeRepo) Create(ctx context.Context, slot *TimeSlot) error {
	for _, existing := range f.slots {
		if existing.LaboratoryID == slot.LaboratoryID &&
			existing.Weekday == slot.Weekday &&
			existing.StartTime == slot.StartTime {
			return ErrDuplicateSlot
		}
	}
	f.nextID++
	slot.ID = fmt.Sprintf("slot-%d", f.nextID)
	cp := *slot
	f.slots[slot.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*TimeSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *slot
	return &cp, nil
}

func (f *fakeRepo) ListByLaboratory(ctx context.Context, laboratoryID string, availableOnly bool) ([]*TimeSlot, error) {
	var result []*TimeSlot
	for _, slot := range f.slots {
		if slot.LaboratoryID != laboratoryID {
			continue
		}
		if availableOnly && !slot.IsAvailable {
			continue
		}
		cp := *slot
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeRepo) Update(ctx context.Context, slot *TimeSlot) error {
	if _, ok := f.slots[slot.ID]; !ok {
		return ErrNotFound
	}
	cp := *slot
	f.slots[slot.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.slots[id]; !ok {
		return ErrNotFound
	}
	delete(f.slots, id)
	return nil
}

type stubLabService struct {
	laboratory.Service
	known map[string]bool
}

func (s *stubLabService) GetByID(ctx context.Context, id string, includeInactive bool) (*laboratory.Laboratory, error) {
	if !s.known[id] {
		return nil, laboratory.ErrNotFound
	}
	return &laboratory.Laboratory{ID: id, IsActive: true}, nil
}

const testLabID = "11111111-1111-1111-1111-111111111111"

func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	labs := &stubLabService{known: map[string]bool{testLabID: true}}
	return NewService(repo, labs), repo
}

func TestCreateSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("valid slot", func(t *testing.T) {
		svc, _ := newTestService(t)

		slot, err := svc.Create(ctx, CreateRequest{
			LaboratoryID: testLabID,
			Weekday:      0,
			StartTime:    "09:00",
			EndTime:      "11:00",
			IsAvailable:  true,
		})
		require.NoError(t, err)
		require.Equal(t, "Monday", slot.WeekdayName())
		require.NotEmpty(t, slot.ID)
	})

	t.Run("weekday out of range", func(t *testing.T) {
		svc, _ := newTestService(t)

		for _, weekday := range []int{-1, 7, 100} {
			_, err := svc.Create(ctx, CreateRequest{
				LaboratoryID: testLabID,
				Weekday:      weekday,
				StartTime:    "09:00",
				EndTime:      "11:00",
			})
			require.ErrorIs(t, err, ErrInvalidWeekday, "weekday %d", weekday)
		}
	})

	t.Run("start must be before end", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, CreateRequest{
			LaboratoryID: testLabID,
			Weekday:      1,
			StartTime:    "11:00",
			EndTime:      "09:00",
		})
		require.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("duplicate slot rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := CreateRequest{
			LaboratoryID: testLabID,
			Weekday:      2,
			StartTime:    "09:00",
			EndTime:      "11:00",
		}

		_, err := svc.Create(ctx, req)
		require.NoError(t, err)

		_, err = svc.Create(ctx, req)
		require.ErrorIs(t, err, ErrDuplicateSlot)
	})

	t.Run("unknown laboratory", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, CreateRequest{
			LaboratoryID: "22222222-2222-2222-2222-222222222222",
			Weekday:      0,
			StartTime:    "09:00",
			EndTime:      "11:00",
		})
		require.ErrorIs(t, err, laboratory.ErrNotFound)
	})
}

func TestListByLaboratoryAvailableOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, CreateRequest{
		LaboratoryID: testLabID, Weekday: 0, StartTime: "09:00", EndTime: "11:00", IsAvailable: true,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{
		LaboratoryID: testLabID, Weekday: 0, StartTime: "13:00", EndTime: "15:00", IsAvailable: false,
	})
	require.NoError(t, err)

	all, err := svc.ListByLaboratory(ctx, testLabID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	available, err := svc.ListByLaboratory(ctx, testLabID, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.True(t, available[0].IsAvailable)
}

func TestUpdateSlot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	slot, err := svc.Create(ctx, CreateRequest{
		LaboratoryID: testLabID, Weekday: 0, StartTime: "09:00", EndTime: "11:00", IsAvailable: true,
	})
	require.NoError(t, err)

	t.Run("update keeps range consistent", func(t *testing.T) {
		// Moving the end before the current start must fail.
		end := "08:00"
		_, err := svc.Update(ctx, slot.ID, UpdateRequest{EndTime: &end})
		require.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("toggle availability", func(t *testing.T) {
		off := false
		updated, err := svc.Update(ctx, slot.ID, UpdateRequest{IsAvailable: &off})
		require.NoError(t, err)
		require.False(t, updated.IsAvailable)
	})

	t.Run("move both ends", func(t *testing.T) {
		start, end := "14:00", "16:30"
		updated, err := svc.Update(ctx, slot.ID, UpdateRequest{StartTime: &start, EndTime: &end})
		require.NoError(t, err)
		require.Equal(t, "14:00", updated.StartTime.String())
		require.Equal(t, "16:30", updated.EndTime.String())
	})
}

func TestDeleteSlot(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	slot, err := svc.Create(ctx, CreateRequest{
		LaboratoryID: testLabID, Weekday: 0, StartTime: "09:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, slot.ID))
	require.Empty(t, repo.slots)

	require.ErrorIs(t, svc.Delete(ctx, slot.ID), ErrNotFound)
}
