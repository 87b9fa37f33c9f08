package labphoto

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotAnImage     = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrFileTooLarge   = apperror.New(http.StatusBadRequest, "uploaded file is too large")
	ErrNoThumbnail    = apperror.New(http.StatusNotFound, "thumbnail not available")
	ErrEmptyUpload    = apperror.New(http.StatusBadRequest, "uploaded file is empty")
	ErrDecodeFailed   = apperror.New(http.StatusBadRequest, "uploaded file could not be decoded as an image")
	ErrLabNotFound    = apperror.New(http.StatusNotFound, "laboratory not found")
	ErrUnsupportedExt = apperror.New(http.StatusBadRequest, "unsupported image format")
)

// Photo represents an image attached to a laboratory.
type Photo struct {
	ID            string    `json:"id"`
	LaboratoryID  string    `json:"laboratory_id"`
	UploaderID    string    `json:"uploader_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// PhotoURL returns the public URL for accessing a photo by its ID.
func PhotoURL(id string) string {
	return "/photos/" + id
}

// ThumbnailURL returns the public URL for accessing a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/photos/" + id + "/thumbnail"
}
