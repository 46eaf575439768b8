package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotExist is returned by Open when the stored object is gone.
var ErrNotExist = errors.New("stored file does not exist")

// FileStore keeps post attachments. Paths returned by Save are what gets
// persisted in posts.file_paths and are passed back to Open and Delete.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// UniqueName prefixes an upload name with a random uuid so uploads with the
// same name never collide.
func UniqueName(name string) string {
	return uuid.NewString() + "_" + sanitize(name)
}

// OriginalName strips the uuid prefix added by UniqueName.
func OriginalName(stored string) string {
	base := path.Base(strings.ReplaceAll(stored, "\\", "/"))
	if i := strings.IndexByte(base, '_'); i == 36 {
		if _, err := uuid.Parse(base[:i]); err == nil {
			return base[i+1:]
		}
	}
	return base
}

func sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
