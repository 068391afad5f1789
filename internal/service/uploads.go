package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/madhava-poojari/mentorship-api/internal/forms"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

// UploadPrefix is the public path under which stored files are served.
const UploadPrefix = forms.FilePrefix

type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Mimetype     string `json:"mimetype"`
	URL          string `json:"url"`
}

type UploadService struct {
	files    utils.FileStore
	maxBytes int64
	baseURL  string
	log      *slog.Logger
}

// NewUploadService stores files in files. baseURL is the public origin that
// serves UploadPrefix and may be empty.
func NewUploadService(files utils.FileStore, maxBytes int64, baseURL string, log *slog.Logger) *UploadService {
	return &UploadService{files: files, maxBytes: maxBytes, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Save stores one uploaded file. The content type is sniffed from the data
// rather than trusted from the client, and the size is measured from r.
func (s *UploadService) Save(ctx context.Context, actor *models.User, originalName string, size int64, r io.ReadSeeker) (*UploadedFile, error) {
	originalName = strings.TrimSpace(filepath.Base(originalName))
	if originalName == "" || originalName == "." || originalName == "/" {
		return nil, newError(ErrBadRequest, "No file uploaded")
	}
	if size > s.maxBytes {
		return nil, newError(ErrBadRequest, "File exceeds the %d MB limit", s.maxBytes>>20)
	}

	actual, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("measure upload: %w", err)
	}
	if actual == 0 {
		return nil, newError(ErrBadRequest, "Uploaded file is empty")
	}
	// the client may under-report size
	if actual > s.maxBytes {
		return nil, newError(ErrBadRequest, "File exceeds the %d MB limit", s.maxBytes>>20)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, fmt.Errorf("sniff upload: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	key, err := s.files.SaveFile(ctx, "", originalName, r)
	if err != nil {
		return nil, err
	}

	s.log.Info("file uploaded", "key", key, "size", actual, "mimetype", mt.String(), "user_id", actor.ID)
	return &UploadedFile{
		Filename:     path.Base(key),
		OriginalName: originalName,
		Path:         UploadPrefix + key,
		Size:         actual,
		Mimetype:     mt.String(),
		URL:          s.baseURL + UploadPrefix + key,
	}, nil
}
