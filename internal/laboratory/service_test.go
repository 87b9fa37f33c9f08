package laboratory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	labs   map[string]*Laboratory
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{labs: make(map[string]*Laboratory)}
}

func (f *fakeRepo) Create(ctx context.Context, lab *Laboratory) error {
	f.nextID++
	lab.ID = fmt.Sprintf("lab-%d", f.nextID)
	cp := *lab
	f.labs[lab.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Laboratory, error) {
	lab, ok := f.labs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *lab
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Laboratory, int, error) {
	var result []*Laboratory
	for _, lab := range f.labs {
		if !filter.IncludeInactive && !lab.IsActive {
			continue
		}
		cp := *lab
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (f *fakeRepo) CountByCategory(ctx context.Context, keyword string) (map[Category]int, error) {
	counts := make(map[Category]int)
	for _, lab := range f.labs {
		if lab.IsActive {
			counts[lab.Category]++
		}
	}
	return counts, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	n := 0
	for _, lab := range f.labs {
		if lab.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Update(ctx context.Context, lab *Laboratory) error {
	if _, ok := f.labs[lab.ID]; !ok {
		return ErrNotFound
	}
	cp := *lab
	f.labs[lab.ID] = &cp
	return nil
}

func (f *fakeRepo) Deactivate(ctx context.Context, id string) error {
	lab, ok := f.labs[id]
	if !ok {
		return ErrNotFound
	}
	lab.IsActive = false
	return nil
}

func TestCreateLaboratory(t *testing.T) {
	ctx := context.Background()

	t.Run("valid laboratory is active by default", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		lab, err := svc.Create(ctx, CreateRequest{
			Name:     "Organic Chemistry Lab",
			Category: "chemistry",
			Capacity: 24,
		})
		require.NoError(t, err)
		require.True(t, lab.IsActive)
		require.Equal(t, CategoryChemistry, lab.Category)
		require.NotEmpty(t, lab.ID)
	})

	t.Run("name is required", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(ctx, CreateRequest{Name: "   ", Capacity: 10})
		require.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(ctx, CreateRequest{Name: "Lab", Capacity: 0})
		require.ErrorIs(t, err, ErrInvalidCapacity)
	})

	t.Run("empty category defaults to other", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		lab, err := svc.Create(ctx, CreateRequest{Name: "Lab", Capacity: 5})
		require.NoError(t, err)
		require.Equal(t, CategoryOther, lab.Category)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(ctx, CreateRequest{Name: "Lab", Capacity: 5, Category: "astrology"})
		require.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestGetByIDVisibility(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	lab, err := svc.Create(ctx, CreateRequest{Name: "Lab", Capacity: 5})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, lab.ID))

	// Public callers cannot see deactivated labs.
	_, err = svc.GetByID(ctx, lab.ID, false)
	require.ErrorIs(t, err, ErrNotFound)

	// Staff callers can.
	got, err := svc.GetByID(ctx, lab.ID, true)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}

func TestListVisibility(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	active, err := svc.Create(ctx, CreateRequest{Name: "Active Lab", Capacity: 5})
	require.NoError(t, err)
	retired, err := svc.Create(ctx, CreateRequest{Name: "Retired Lab", Capacity: 5})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, retired.ID))

	labs, total, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, active.ID, labs[0].ID)

	labs, total, err = svc.List(ctx, Filter{IncludeInactive: true})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	ids := []string{labs[0].ID, labs[1].ID}
	require.ElementsMatch(t, []string{active.ID, retired.ID}, ids)
}

func TestCategoryCounts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	mustCreate := func(name, category string) *Laboratory {
		lab, err := svc.Create(ctx, CreateRequest{Name: name, Category: category, Capacity: 10})
		require.NoError(t, err)
		return lab
	}

	mustCreate("Physics 1", "physics")
	mustCreate("Physics 2", "physics")
	mustCreate("Bio 1", "biology")
	inactive := mustCreate("Chem 1", "chemistry")
	require.NoError(t, svc.Deactivate(ctx, inactive.ID))

	counts, err := svc.CategoryCounts(ctx, "")
	require.NoError(t, err)

	// Categories with zero labs are omitted, and the deactivated lab
	// does not count.
	require.Len(t, counts, 2)
	require.Equal(t, CategoryPhysics, counts[0].Code)
	require.Equal(t, 2, counts[0].Count)
	require.Equal(t, CategoryBiology, counts[1].Code)
	require.Equal(t, 1, counts[1].Count)
	require.Equal(t, "#198754", counts[1].Color)
}

func TestUpdateLaboratory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	lab, err := svc.Create(ctx, CreateRequest{Name: "Lab", Capacity: 5})
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		name := "Renamed Lab"
		capacity := 30
		updated, err := svc.Update(ctx, lab.ID, UpdateRequest{Name: &name, Capacity: &capacity})
		require.NoError(t, err)
		require.Equal(t, "Renamed Lab", updated.Name)
		require.Equal(t, 30, updated.Capacity)
		require.Equal(t, lab.Category, updated.Category)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		blank := "  "
		_, err := svc.Update(ctx, lab.ID, UpdateRequest{Name: &blank})
		require.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("empty photo id clears the cover", func(t *testing.T) {
		photoID := "some-photo"
		updated, err := svc.Update(ctx, lab.ID, UpdateRequest{PhotoID: &photoID})
		require.NoError(t, err)
		require.NotNil(t, updated.PhotoID)

		empty := ""
		updated, err = svc.Update(ctx, lab.ID, UpdateRequest{PhotoID: &empty})
		require.NoError(t, err)
		require.Nil(t, updated.PhotoID)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "x"
		_, err := svc.Update(ctx, "missing", UpdateRequest{Name: &name})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
