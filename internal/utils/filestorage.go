package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStorage handles saving and deleting files on local disk.
type FileStorage struct {
	BaseDir string // e.g. "./uploads"
	files   http.Handler
}

// NewFileStorage creates a FileStorage rooted at baseDir.
func NewFileStorage(baseDir string) *FileStorage {
	return &FileStorage{BaseDir: baseDir, files: http.FileServer(noListing{http.Dir(baseDir)})}
}

// SaveFile writes the contents of reader to <BaseDir>/<subDir>/<uuid><ext>.
// It returns the key (relative path from BaseDir) that can be stored in DB.
func (fs *FileStorage) SaveFile(ctx context.Context, subDir, originalFilename string, reader io.Reader) (string, error) {
	dir := filepath.Join(fs.BaseDir, filepath.FromSlash(subDir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	uniqueName := uniqueFilename(originalFilename)
	fullPath := filepath.Join(dir, uniqueName)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, contextReader{ctx: ctx, r: reader}); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}
	return path.Join(subDir, uniqueName), nil
}

// DeleteFile removes the file at <BaseDir>/<key>.
// It is safe to call if the file does not exist.
func (fs *FileStorage) DeleteFile(_ context.Context, key string) error {
	clean := path.Clean("/" + key)
	fullPath := filepath.Join(fs.BaseDir, filepath.FromSlash(clean))
	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}

func (fs *FileStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fs.files.ServeHTTP(w, r)
}

func uniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return uuid.NewString() + ext
}

// noListing hides directory indexes.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
