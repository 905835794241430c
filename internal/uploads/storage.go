// Package uploads stores advertisement images and returns their public URLs.
package uploads

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage saves one image and returns the URL clients should use for it.
// Delete removes an image saved under name; a missing image is not an error.
type Storage interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, name string) error
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DetectImageType sniffs the first bytes of an upload. ok is false for anything
// that is not a supported image format.
func DetectImageType(head []byte) (contentType string, ok bool) {
	ct := http.DetectContentType(head)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	_, ok = imageExtensions[ct]
	return ct, ok
}

// ObjectName builds a collision-free name like 2025/01/10/<uuid>.jpg.
func ObjectName(now time.Time, contentType string) string {
	return path.Join(now.UTC().Format("2006/01/02"), uuid.NewString()+imageExtensions[contentType])
}
