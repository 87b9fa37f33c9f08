package laboratory

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name        string
	Category    string
	Location    string
	Capacity    int
	Equipment   string
	Description string
}

type UpdateRequest struct {
	Name        *string
	Category    *string
	Location    *string
	Capacity    *int
	Equipment   *string
	Description *string
	IsActive    *bool
	PhotoID     *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Laboratory, error)
	// GetByID returns the laboratory. Inactive labs are only visible when
	// includeInactive is set (staff callers).
	GetByID(ctx context.Context, id string, includeInactive bool) (*Laboratory, error)
	List(ctx context.Context, filter Filter) ([]*Laboratory, int, error)
	// CategoryCounts returns the per-category breakdown of active labs
	// matching the keyword, skipping categories with no matches.
	CategoryCounts(ctx context.Context, keyword string) ([]CategoryCount, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Laboratory, error)
	Deactivate(ctx context.Context, id string) error
	// Count reports the number of active laboratories.
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Laboratory, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	cat := Category(req.Category)
	if req.Category == "" {
		cat = CategoryOther
	}
	if !cat.Valid() {
		return nil, ErrInvalidCategory
	}

	lab := &Laboratory{
		Name:        strings.TrimSpace(req.Name),
		Category:    cat,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Equipment:   req.Equipment,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, lab); err != nil {
		return nil, err
	}
	return lab, nil
}

func (s *service) GetByID(ctx context.Context, id string, includeInactive bool) (*Laboratory, error) {
	lab, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lab.IsActive && !includeInactive {
		return nil, ErrNotFound
	}
	return lab, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Laboratory, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) CategoryCounts(ctx context.Context, keyword string) ([]CategoryCount, error) {
	counts, err := s.repo.CountByCategory(ctx, keyword)
	if err != nil {
		return nil, err
	}

	// Keep the fixed category order for stable output.
	result := make([]CategoryCount, 0, len(counts))
	for _, cat := range Categories {
		n, ok := counts[cat]
		if !ok || n == 0 {
			continue
		}
		result = append(result, CategoryCount{
			Code:  cat,
			Name:  cat.DisplayName(),
			Count: n,
			Color: cat.Color(),
		})
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Laboratory, error) {
	lab, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		lab.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		cat := Category(*req.Category)
		if !cat.Valid() {
			return nil, ErrInvalidCategory
		}
		lab.Category = cat
	}
	if req.Location != nil {
		lab.Location = *req.Location
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		lab.Capacity = *req.Capacity
	}
	if req.Equipment != nil {
		lab.Equipment = *req.Equipment
	}
	if req.Description != nil {
		lab.Description = *req.Description
	}
	if req.IsActive != nil {
		lab.IsActive = *req.IsActive
	}
	if req.PhotoID != nil {
		if *req.PhotoID == "" {
			lab.PhotoID = nil
		} else {
			lab.PhotoID = req.PhotoID
		}
	}

	if err := s.repo.Update(ctx, lab); err != nil {
		return nil, err
	}
	return lab, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
