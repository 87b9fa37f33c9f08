package labphoto

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/storage"
)

// UploadInput carries everything needed to attach a photo to a laboratory.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	LaboratoryID string
	UploaderID   string
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*Photo, error)
	Get(ctx context.Context, id string) (*Photo, error)
	ListByLaboratory(ctx context.Context, laboratoryID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
}

type service struct {
	repo       Repository
	labService laboratory.Service
	storage    storage.Storage
	imgProc    *storage.ImageProcessor

	maxSizeBytes int64
}

func NewService(repo Repository, labService laboratory.Service, store storage.Storage) Service {
	return &service{
		repo:         repo,
		labService:   labService,
		storage:      store,
		imgProc:      storage.NewImageProcessor(),
		maxSizeBytes: 10 << 20, // 10 MiB
	}
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Photo, error) {
	// The laboratory must exist; inactive labs can still receive photos
	// while staff prepare them for publication.
	if _, err := s.labService.GetByID(ctx, in.LaboratoryID, true); err != nil {
		return nil, ErrLabNotFound
	}

	if in.FileHeader.Size == 0 {
		return nil, ErrEmptyUpload
	}
	if in.FileHeader.Size > s.maxSizeBytes {
		return nil, ErrFileTooLarge
	}

	contentType := in.FileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(in.FileHeader.Filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedExt
	}

	src, err := in.FileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be both decoded and saved. Uploads are
	// size-capped images, so holding them in memory is acceptable.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	// Decoding up front rejects files that merely claim an image type.
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 400, 300)
	if err != nil {
		return nil, ErrDecodeFailed
	}

	photoID := uuid.New().String()

	// Sharding path: photos/ab/UUID.ext
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	thumbPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
	thumbnailPath := &thumbPath
	if err := s.storage.Save(ctx, thumbPath, thumbReader); err != nil {
		// The photo is still usable without a thumbnail.
		thumbnailPath = nil
	}

	p := &Photo{
		ID:            photoID,
		LaboratoryID:  in.LaboratoryID,
		UploaderID:    in.UploaderID,
		Filename:      in.FileHeader.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          in.FileHeader.Size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Cleanup storage if db fails
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	// The first photo becomes the laboratory's cover.
	if lab, err := s.labService.GetByID(ctx, in.LaboratoryID, true); err == nil && lab.PhotoID == nil {
		id := p.ID
		_, _ = s.labService.Update(ctx, in.LaboratoryID, laboratory.UpdateRequest{PhotoID: &id})
	}

	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByLaboratory(ctx context.Context, laboratoryID string) ([]*Photo, error) {
	if _, err := s.labService.GetByID(ctx, laboratoryID, true); err != nil {
		return nil, ErrLabNotFound
	}
	return s.repo.ListByLaboratory(ctx, laboratoryID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Best-effort cleanup of stored content before removing the record.
	_ = s.storage.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// If the deleted photo was the cover, promote the next one (or clear).
	if lab, err := s.labService.GetByID(ctx, p.LaboratoryID, true); err == nil &&
		lab.PhotoID != nil && *lab.PhotoID == id {
		next := ""
		if remaining, err := s.repo.ListByLaboratory(ctx, p.LaboratoryID); err == nil && len(remaining) > 0 {
			next = remaining[0].ID
		}
		_, _ = s.labService.Update(ctx, p.LaboratoryID, laboratory.UpdateRequest{PhotoID: &next})
	}

	return nil
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve photo from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, p, nil
}
