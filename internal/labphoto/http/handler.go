package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/lab-reservation-backend/internal/auth"
	"github.com/nekogravitycat/lab-reservation-backend/internal/labphoto"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/response"
)

type Handler struct {
	photoService labphoto.Service
}

func NewHandler(photoService labphoto.Service) *Handler {
	return &Handler{
		photoService: photoService,
	}
}

// List returns all photos attached to a laboratory.
func (h *Handler) List(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	photos, err := h.photoService.ListByLaboratory(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewPhotoResponse(p)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Upload attaches a new photo to a laboratory.
// Access Control: Staff only.
func (h *Handler) Upload(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	p, err := h.photoService.Upload(c.Request.Context(), labphoto.UploadInput{
		FileHeader:   fileHeader,
		LaboratoryID: req.ID,
		UploaderID:   auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	var thumbURL *string
	if p.ThumbnailPath != nil {
		t := labphoto.ThumbnailURL(p.ID)
		thumbURL = &t
	}

	resp := PhotoUploadResponse{
		Message:      "photo uploaded successfully",
		PhotoID:      p.ID,
		URL:          labphoto.PhotoURL(p.ID),
		ThumbnailURL: thumbURL,
	}

	c.JSON(http.StatusCreated, resp)
}

// ServePhoto serves the photo content by ID.
func (h *Handler) ServePhoto(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo ID is required"})
		return
	}

	stream, p, err := h.photoService.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", p.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started
		return
	}
}

// ServeThumbnail serves the thumbnail image by photo ID.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo ID is required"})
		return
	}

	stream, p, err := h.photoService.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started
		return
	}
}

// Delete removes a photo.
// Access Control: Staff only.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.photoService.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
