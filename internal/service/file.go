package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"filebox/internal/model"
	"filebox/internal/repository"
	"filebox/internal/storage"
)

var (
	// ErrKeyRequired is returned when an operation is called without an object key.
	ErrKeyRequired = errors.New("key is required")
	// ErrReaderNil is returned when an upload is attempted without content.
	ErrReaderNil = errors.New("reader is nil")
)

// Download carries a streamed object and its declared content metadata.
type Download struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// PresignedDownload is a time-limited GET URL. Filename is best-effort
// enrichment from the metadata store and may be empty.
type PresignedDownload struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Filename string `json:"filename,omitempty"`
}

// PresignedUpload is a time-limited PUT URL and the freshly generated key the
// caller must upload under and later report back via CompletePresignedUpload.
type PresignedUpload struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// FileService coordinates the object storage gateway and the file metadata
// store. The two writes (object PUT, metadata INSERT) are not transactional;
// a failed metadata insert after a successful PUT is compensated by deleting
// the just-written object.
type FileService interface {
	// Upload stores the content under a freshly generated key and records its
	// metadata. No metadata row is created if the object write fails.
	Upload(ctx context.Context, r io.Reader, filename, mimetype string, size int64, userID int64) (*model.File, error)

	// Download streams the object bytes for a key through this service.
	// It does not consult the metadata store.
	Download(ctx context.Context, key string) (*Download, error)

	// PresignedDownload issues a short-lived GET URL for the key and attaches
	// the recorded filename when one exists. URL provisioning never fails
	// solely because filename enrichment failed.
	PresignedDownload(ctx context.Context, key string) (*PresignedDownload, error)

	// PresignedUpload generates a fresh key and a short-lived PUT URL for it.
	// Nothing is persisted at this point; the caller completes the upload out
	// of band and then reports it via CompletePresignedUpload.
	PresignedUpload(ctx context.Context, mimetype string) (*PresignedUpload, error)

	// CompletePresignedUpload records caller-supplied metadata for a key the
	// caller claims to have uploaded. The claim is not verified against the
	// object store.
	CompletePresignedUpload(ctx context.Context, key, filename string, size int64, mimetype string, userID int64) (*model.File, error)

	// List returns the given user's files, newest first.
	List(ctx context.Context, userID int64) ([]model.File, error)

	// Orphans returns objects present in the bucket that have no metadata
	// row, e.g. abandoned presigned uploads.
	Orphans(ctx context.Context) ([]storage.ObjectInfo, error)
}

type fileService struct {
	store         storage.Storage
	repo          repository.FileRepository
	presignExpiry time.Duration
}

// NewFileService constructs a new FileService. presignExpiry is the lifetime
// applied to every issued presigned URL.
func NewFileService(store storage.Storage, repo repository.FileRepository, presignExpiry time.Duration) FileService {
	return &fileService{store: store, repo: repo, presignExpiry: presignExpiry}
}

func (s *fileService) Upload(ctx context.Context, r io.Reader, filename, mimetype string, size int64, userID int64) (*model.File, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	// Keys are always freshly generated, never derived from content or
	// chosen by the caller.
	key := uuid.New().String()

	_, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: mimetype,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	stored, err := s.repo.Create(ctx, &model.File{
		Key:        key,
		Filename:   filename,
		Size:       size,
		Mimetype:   mimetype,
		UploadedBy: userID,
	})
	if err != nil {
		// Compensate: remove the object so no unrecorded bytes linger.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *fileService) Download(ctx context.Context, key string) (*Download, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	body, info, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Download{
		Body:          body,
		ContentType:   contentType,
		ContentLength: info.Size,
	}, nil
}

func (s *fileService) PresignedDownload(ctx context.Context, key string) (*PresignedDownload, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	url, err := s.store.PresignGet(ctx, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign get: %w", err)
	}

	res := &PresignedDownload{URL: url, Key: key}
	if record, err := s.repo.FindByKey(ctx, key); err == nil {
		res.Filename = record.Filename
	}
	return res, nil
}

func (s *fileService) PresignedUpload(ctx context.Context, mimetype string) (*PresignedUpload, error) {
	key := uuid.New().String()
	url, err := s.store.PresignPut(ctx, key, mimetype, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}
	return &PresignedUpload{URL: url, Key: key}, nil
}

func (s *fileService) CompletePresignedUpload(ctx context.Context, key, filename string, size int64, mimetype string, userID int64) (*model.File, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	stored, err := s.repo.Create(ctx, &model.File{
		Key:        key,
		Filename:   filename,
		Size:       size,
		Mimetype:   mimetype,
		UploadedBy: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return stored, nil
}

func (s *fileService) List(ctx context.Context, userID int64) ([]model.File, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *fileService) Orphans(ctx context.Context) ([]storage.ObjectInfo, error) {
	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	orphans := make([]storage.ObjectInfo, 0)
	for _, obj := range objects {
		_, err := s.repo.FindByKey(ctx, obj.Key)
		if err == nil {
			continue
		}
		if errors.Is(err, sql.ErrNoRows) {
			orphans = append(orphans, obj)
			continue
		}
		return nil, fmt.Errorf("lookup key %q: %w", obj.Key, err)
	}
	return orphans, nil
}
