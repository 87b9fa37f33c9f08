package laboratory

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "laboratory not found")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "laboratory name is required")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be a positive integer")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "unknown laboratory category")
)

// Laboratory represents a bookable university lab.
// Labs are soft-disabled via IsActive and never hard-deleted.
type Laboratory struct {
	ID          string
	Name        string
	Category    Category
	Location    string
	Capacity    int
	Equipment   string
	Description string
	IsActive    bool
	PhotoID     *string
	CreatedAt   time.Time
}

// Filter defines parameters for listing laboratories.
type Filter struct {
	Keyword         string // matches name, location, description or equipment
	Category        string
	IncludeInactive bool // staff only
	Page            int
	PageSize        int
}

// CategoryCount is one entry of the per-category breakdown shown next to
// laboratory search results.
type CategoryCount struct {
	Code  Category
	Name  string
	Count int
	Color string
}
