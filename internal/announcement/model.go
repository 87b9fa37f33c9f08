package announcement

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "announcement not found")
	ErrTitleRequired   = apperror.New(http.StatusBadRequest, "title is required")
	ErrContentRequired = apperror.New(http.StatusBadRequest, "content is required")
)

// Announcement is a notice shown to everyone on the reservation portal,
// such as lab closures or maintenance windows.
type Announcement struct {
	ID        string
	Title     string
	Content   string
	AuthorID  *string // nil when the author account was removed
	IsPinned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing announcements.
type Filter struct {
	Keyword    string
	PinnedOnly bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
