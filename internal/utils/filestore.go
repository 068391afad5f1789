package utils

import (
	"context"
	"io"
	"net/http"
)

// FileStore keeps uploaded files. Keys are slash separated paths relative to
// the store root. ServeHTTP serves the object named by the request path.
type FileStore interface {
	SaveFile(ctx context.Context, subDir, originalFilename string, reader io.Reader) (string, error)
	DeleteFile(ctx context.Context, key string) error
	http.Handler
}
