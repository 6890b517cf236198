package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"company-board-api/utils"
)

// Stored file keys are namespaced under one folder so local and remote
// backends agree on the key format.
const storageFolder = "responses"

var ErrDirectReadUnsupported = errors.New("direct file reads are only supported by local storage")

// FileStorage is a key-addressed byte store. The backend is chosen once at
// startup; there is no runtime switching.
type FileStorage interface {
	// Upload stores the content and returns the opaque key.
	Upload(ctx context.Context, content io.Reader, fileName, contentType string) (string, error)
	// SignedURL resolves a key to a time-limited download URL.
	SignedURL(key string, expiry time.Duration) (string, error)
	// Read returns the raw bytes for a key (local backend only).
	Read(key string) ([]byte, error)
}

// NewFileStorageFromEnv builds the configured backend. USE_LOCAL_STORAGE
// defaults to true; anything else selects the remote object store.
func NewFileStorageFromEnv() (FileStorage, error) {
	useLocal := strings.ToLower(utils.DefaultString(os.Getenv("USE_LOCAL_STORAGE"), "true")) == "true"
	if useLocal {
		basePath := utils.DefaultString(os.Getenv("UPLOAD_PATH"), "./uploads")
		store, err := NewLocalStorage(basePath)
		if err != nil {
			return nil, err
		}
		log.Printf("Using local file storage at %s", basePath)
		return store, nil
	}

	store, err := NewCloudinaryStorage()
	if err != nil {
		return nil, err
	}
	log.Println("Using Cloudinary object storage")
	return store, nil
}

/* ==========================
   Local filesystem backend
   ========================== */

type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// uniqueFileName prepends a short random prefix so identical file names
// never collide in the store.
func uniqueFileName(fileName string) string {
	prefix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return prefix + "_" + utils.SanitizeFilename(fileName)
}

func (s *LocalStorage) Upload(_ context.Context, content io.Reader, fileName, _ string) (string, error) {
	uniqueName := uniqueFileName(fileName)
	path := filepath.Join(s.basePath, uniqueName)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		os.Remove(path)
		return "", err
	}

	return storageFolder + "/" + uniqueName, nil
}

// SignedURL points at the local download endpoint; local files need no
// expiry so the duration is ignored.
func (s *LocalStorage) SignedURL(key string, _ time.Duration) (string, error) {
	return "/api/file/local/" + url.PathEscape(key), nil
}

func (s *LocalStorage) Read(key string) ([]byte, error) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 || parts[0] != storageFolder {
		return nil, fmt.Errorf("invalid file key: %s", key)
	}

	// filepath.Base stops traversal out of the upload directory.
	name := filepath.Base(parts[1])
	return os.ReadFile(filepath.Join(s.basePath, name))
}

/* ==========================
   Cloudinary backend
   ========================== */

type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, content io.Reader, fileName, _ string) (string, error) {
	publicID := storageFolder + "/" + uniqueFileName(fileName)
	resp, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return resp.PublicID, nil
}

func (s *CloudinaryStorage) SignedURL(key string, _ time.Duration) (string, error) {
	asset, err := s.cld.File(key)
	if err != nil {
		return "", err
	}
	asset.Config.URL.SignURL = true
	return asset.String()
}

func (s *CloudinaryStorage) Read(string) ([]byte, error) {
	return nil, ErrDirectReadUnsupported
}
