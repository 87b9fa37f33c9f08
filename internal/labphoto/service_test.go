package labphoto

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/lab-reservation-backend/internal/laboratory"
)

const testLabID = "9f8e7d6c-5b4a-3210-fedc-ba9876543210"

type fakeRepo struct {
	photos map[string]*Photo
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{photos: make(map[string]*Photo)}
}

func (r *fakeRepo) Create(_ context.Context, p *Photo) error {
	cp := *p
	r.photos[p.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) ListByLaboratory(_ context.Context, laboratoryID string) ([]*Photo, error) {
	var out []*Photo
	for _, p := range r.photos {
		if p.LaboratoryID == laboratoryID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

type fakeLabService struct {
	labs map[string]*laboratory.Laboratory
}

func newFakeLabService() *fakeLabService {
	return &fakeLabService{labs: map[string]*laboratory.Laboratory{
		testLabID: {ID: testLabID, Name: "Optics Lab", IsActive: true},
	}}
}

func (s *fakeLabService) GetByID(_ context.Context, id string, includeInactive bool) (*laboratory.Laboratory, error) {
	lab, ok := s.labs[id]
	if !ok || (!lab.IsActive && !includeInactive) {
		return nil, laboratory.ErrNotFound
	}
	cp := *lab
	return &cp, nil
}

func (s *fakeLabService) Update(_ context.Context, id string, req laboratory.UpdateRequest) (*laboratory.Laboratory, error) {
	lab, ok := s.labs[id]
	if !ok {
		return nil, laboratory.ErrNotFound
	}
	if req.PhotoID != nil {
		if *req.PhotoID == "" {
			lab.PhotoID = nil
		} else {
			id := *req.PhotoID
			lab.PhotoID = &id
		}
	}
	cp := *lab
	return &cp, nil
}

func (s *fakeLabService) Create(context.Context, laboratory.CreateRequest) (*laboratory.Laboratory, error) {
	panic("not used")
}

func (s *fakeLabService) List(context.Context, laboratory.Filter) ([]*laboratory.Laboratory, int, error) {
	panic("not used")
}

func (s *fakeLabService) CategoryCounts(context.Context, string) ([]laboratory.CategoryCount, error) {
	panic("not used")
}

func (s *fakeLabService) Deactivate(context.Context, string) error { panic("not used") }

func (s *fakeLabService) Count(context.Context) (int, error) { panic("not used") }

type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Save(_ context.Context, path string, content io.Reader) error {
	b, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[path] = b
	return nil
}

func (s *memStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	b, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

// fileHeader builds a real multipart file header so Open() works in tests.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeLabService, *memStorage) {
	t.Helper()
	repo := newFakeRepo()
	labs := newFakeLabService()
	store := newMemStorage()
	return NewService(repo, labs, store), repo, labs, store
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("valid png is stored with a thumbnail", func(t *testing.T) {
		svc, repo, _, store := newTestService(t)

		fh := fileHeader(t, "bench.png", "image/png", pngBytes(t))
		p, err := svc.Upload(ctx, UploadInput{FileHeader: fh, LaboratoryID: testLabID, UploaderID: "staff-1"})
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		require.Equal(t, "bench.png", p.Filename)
		require.NotNil(t, p.ThumbnailPath)

		require.Contains(t, store.files, p.StoragePath)
		require.Contains(t, store.files, *p.ThumbnailPath)
		_, err = repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
	})

	t.Run("first photo becomes the laboratory cover", func(t *testing.T) {
		svc, _, labs, _ := newTestService(t)

		first, err := svc.Upload(ctx, UploadInput{
			FileHeader: fileHeader(t, "a.png", "image/png", pngBytes(t)), LaboratoryID: testLabID, UploaderID: "staff-1",
		})
		require.NoError(t, err)
		require.NotNil(t, labs.labs[testLabID].PhotoID)
		require.Equal(t, first.ID, *labs.labs[testLabID].PhotoID)

		_, err = svc.Upload(ctx, UploadInput{
			FileHeader: fileHeader(t, "b.png", "image/png", pngBytes(t)), LaboratoryID: testLabID, UploaderID: "staff-1",
		})
		require.NoError(t, err)
		require.Equal(t, first.ID, *labs.labs[testLabID].PhotoID, "second upload must not replace the cover")
	})

	t.Run("unknown laboratory", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		fh := fileHeader(t, "a.png", "image/png", pngBytes(t))
		_, err := svc.Upload(ctx, UploadInput{FileHeader: fh, LaboratoryID: "00000000-0000-0000-0000-000000000000", UploaderID: "staff-1"})
		require.ErrorIs(t, err, ErrLabNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		fh := fileHeader(t, "a.png", "image/png", nil)
		_, err := svc.Upload(ctx, UploadInput{FileHeader: fh, LaboratoryID: testLabID, UploaderID: "staff-1"})
		require.ErrorIs(t, err, ErrEmptyUpload)
	})

	t.Run("non-image content type", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		fh := fileHeader(t, "notes.txt", "text/plain", []byte("hello"))
		_, err := svc.Upload(ctx, UploadInput{FileHeader: fh, LaboratoryID: testLabID, UploaderID: "staff-1"})
		require.ErrorIs(t, err, ErrNotAnImage)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		fh := fileHeader(t, "scan.tiff", "image/tiff", pngBytes(t))
		_, err := svc.Upload(ctx, UploadInput{FileHeader: fh, LaboratoryID: testLabID, UploaderID: "staff-1"})
		require.ErrorIs(t, err, ErrUnsupportedExt)
	})

	t.Run("image content type but garbage bytes", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		fh := fileHeader(t, "fake.png", "image/png", []byte("definitely not a png"))
		_, err := svc.Upload(ctx, UploadInput{FileHeader: fh, LaboratoryID: testLabID, UploaderID: "staff-1"})
		require.ErrorIs(t, err, ErrDecodeFailed)
	})
}

func TestDeletePhoto(t *testing.T) {
	ctx := context.Background()

	upload := func(t *testing.T, svc Service, name string) *Photo {
		t.Helper()
		p, err := svc.Upload(ctx, UploadInput{
			FileHeader: fileHeader(t, name, "image/png", pngBytes(t)), LaboratoryID: testLabID, UploaderID: "staff-1",
		})
		require.NoError(t, err)
		return p
	}

	t.Run("removes record and stored files", func(t *testing.T) {
		svc, repo, _, store := newTestService(t)
		p := upload(t, svc, "a.png")

		require.NoError(t, svc.Delete(ctx, p.ID))
		_, err := repo.GetByID(ctx, p.ID)
		require.ErrorIs(t, err, ErrNotFound)
		require.NotContains(t, store.files, p.StoragePath)
	})

	t.Run("deleting the cover promotes the next photo", func(t *testing.T) {
		svc, _, labs, _ := newTestService(t)
		first := upload(t, svc, "a.png")
		second := upload(t, svc, "b.png")

		require.NoError(t, svc.Delete(ctx, first.ID))
		require.NotNil(t, labs.labs[testLabID].PhotoID)
		require.Equal(t, second.ID, *labs.labs[testLabID].PhotoID)
	})

	t.Run("deleting the last photo clears the cover", func(t *testing.T) {
		svc, _, labs, _ := newTestService(t)
		p := upload(t, svc, "a.png")

		require.NoError(t, svc.Delete(ctx, p.ID))
		require.Nil(t, labs.labs[testLabID].PhotoID)
	})

	t.Run("unknown photo", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		require.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	content := pngBytes(t)
	p, err := svc.Upload(ctx, UploadInput{
		FileHeader: fileHeader(t, "a.png", "image/png", content), LaboratoryID: testLabID, UploaderID: "staff-1",
	})
	require.NoError(t, err)

	stream, got, err := svc.Download(ctx, p.ID)
	require.NoError(t, err)
	defer stream.Close()
	require.Equal(t, p.ID, got.ID)

	b, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Equal(t, content, b)

	thumb, _, err := svc.DownloadThumbnail(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, thumb.Close())
}
