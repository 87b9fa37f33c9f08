package http

import (
	"time"

	"github.com/nekogravitycat/lab-reservation-backend/internal/labphoto"
)

type PhotoUploadResponse struct {
	Message      string  `json:"message"`
	PhotoID      string  `json:"photo_id"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// PhotoResponse describes a photo in listing responses.
type PhotoResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPhotoResponse(p *labphoto.Photo) PhotoResponse {
	var thumbURL *string
	if p.ThumbnailPath != nil {
		t := labphoto.ThumbnailURL(p.ID)
		thumbURL = &t
	}
	return PhotoResponse{
		ID:           p.ID,
		Filename:     p.Filename,
		ContentType:  p.ContentType,
		Size:         p.Size,
		URL:          labphoto.PhotoURL(p.ID),
		ThumbnailURL: thumbURL,
		CreatedAt:    p.CreatedAt,
	}
}
