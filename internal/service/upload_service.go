package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/observability"

	"github.com/google/uuid"
)

// File kinds. Each kind maps to its own directory under the upload
// root and its own content-type allow-list.
const (
	KindImage = "images"
	KindVideo = "videos"
)

// MaxFilesPerRequest bounds multi-file uploads on the generic
// endpoint. The image-only endpoint uses a tighter limit.
const (
	MaxFilesPerRequest  = 10
	MaxImagesPerRequest = 5
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var videoTypes = map[string]bool{
	"video/mp4":       true,
	"video/avi":       true,
	"video/quicktime": true,
	"video/x-ms-wmv":  true,
}

type UploadService struct {
	root     string
	maxBytes int64
}

func NewUploadService(root string, maxBytes int64) *UploadService {
	return &UploadService{
		root:     root,
		maxBytes: maxBytes,
	}
}

type UploadFileInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	Content      io.Reader
}

// StoredFile describes a file that was written to disk.
type StoredFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	Kind         string `json:"type"`
	URL          string `json:"url"`
}

// FileStat describes a file already on disk.
type FileStat struct {
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Kind     string    `json:"type"`
}

// Upload validates and stores a single file, returning its generated
// name and metadata. Nothing touches disk unless validation passes.
func (s *UploadService) Upload(caller *models.Caller, kind string, in UploadFileInput) (*StoredFile, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := s.validate(kind, in); err != nil {
		return nil, err
	}
	return s.store(kind, in)
}

// UploadMany validates every file in the batch before any of them is
// written, so a bad file in the middle does not leave partial results.
func (s *UploadService) UploadMany(caller *models.Caller, kind string, ins []UploadFileInput, maxFiles int) ([]StoredFile, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if len(ins) == 0 {
		return nil, models.NewUploadError("No files uploaded")
	}
	if len(ins) > maxFiles {
		observability.UploadRejections.WithLabelValues("too_many_files").Inc()
		return nil, models.NewUploadError(fmt.Sprintf("Too many files. Maximum %d files allowed.", maxFiles))
	}
	for _, in := range ins {
		if err := s.validate(kind, in); err != nil {
			return nil, err
		}
	}

	stored := make([]StoredFile, 0, len(ins))
	for _, in := range ins {
		f, err := s.store(kind, in)
		if err != nil {
			for _, prev := range stored {
				os.Remove(filepath.Join(s.root, prev.Kind, prev.Filename))
			}
			return nil, err
		}
		stored = append(stored, *f)
	}
	return stored, nil
}

// Delete removes a stored file by name, searching both kind
// directories. Returns false when no such file exists.
func (s *UploadService) Delete(caller *models.Caller, filename string) (bool, error) {
	if caller == nil {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	name := filepath.Base(filename)
	if name == "." || name == "/" || name == "" {
		return false, models.NewUploadError("Invalid filename")
	}

	for _, kind := range []string{KindImage, KindVideo} {
		path := filepath.Join(s.root, kind, name)
		if err := os.Remove(path); err == nil {
			return true, nil
		} else if !os.IsNotExist(err) {
			return false, models.NewInternalError(err)
		}
	}
	return false, nil
}

// Stat returns metadata for a stored file.
func (s *UploadService) Stat(caller *models.Caller, filename string) (*FileStat, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	name := filepath.Base(filename)

	for _, kind := range []string{KindImage, KindVideo} {
		info, err := os.Stat(filepath.Join(s.root, kind, name))
		if err == nil {
			return &FileStat{
				Filename: name,
				Size:     info.Size(),
				Modified: info.ModTime(),
				Kind:     kind,
			}, nil
		}
		if !os.IsNotExist(err) {
			return nil, models.NewInternalError(err)
		}
	}
	return nil, models.NewNotFoundError("File")
}

// FileURL builds the public URL for a stored file.
func FileURL(baseURL, kind, filename string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", strings.TrimRight(baseURL, "/"), kind, filename)
}

func (s *UploadService) validate(kind string, in UploadFileInput) error {
	var allowed map[string]bool
	switch kind {
	case KindImage:
		allowed = imageTypes
	case KindVideo:
		allowed = videoTypes
	default:
		return models.NewUploadError("Unsupported upload type")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	if i := strings.IndexByte(contentType, ';'); i > 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !allowed[contentType] {
		observability.UploadRejections.WithLabelValues("content_type").Inc()
		return models.NewUploadError(fmt.Sprintf("File type %s is not allowed", in.ContentType))
	}
	if in.Size <= 0 {
		observability.UploadRejections.WithLabelValues("empty").Inc()
		return models.NewUploadError("File is empty")
	}
	if in.Size > s.maxBytes {
		observability.UploadRejections.WithLabelValues("size").Inc()
		return models.NewUploadError(fmt.Sprintf("File too large. Maximum size is %dMB", s.maxBytes/(1024*1024)))
	}
	return nil
}

func (s *UploadService) store(kind string, in UploadFileInput) (*StoredFile, error) {
	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, models.NewInternalError(err)
	}

	name := storedName(in.OriginalName)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, in.Content)
	if err != nil {
		os.Remove(dst.Name())
		return nil, models.NewInternalError(err)
	}

	observability.UploadsTotal.WithLabelValues(kind).Inc()
	return &StoredFile{
		Filename:     name,
		OriginalName: in.OriginalName,
		MimeType:     in.ContentType,
		Size:         written,
		Kind:         kind,
	}, nil
}

// storedName generates a collision-resistant filename that keeps the
// original base name recognizable.
func storedName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = sanitizeBaseName(base)
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixNano(), uuid.New().String()[:8], ext)
}

func sanitizeBaseName(base string) string {
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
