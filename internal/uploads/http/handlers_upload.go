package http

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/error7buddy/KiLagbe.Com/internal/httpx"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
	"github.com/error7buddy/KiLagbe.Com/internal/uploads"
)

const formField = "images"

type pendingImage struct {
	fh          *multipart.FileHeader
	contentType string
}

// Upload accepts multipart form files under "images" and returns their URLs in
// upload order. Either every image is stored or none is.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize*int64(h.maxFiles)+(1<<20))

	form, err := c.MultipartForm()
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "multipart form with images is required")
		return
	}

	files := form.File[formField]
	switch {
	case len(files) == 0:
		httpx.Fail(c, http.StatusBadRequest, "at least one image is required")
		return
	case len(files) > h.maxFiles:
		httpx.Fail(c, http.StatusBadRequest, fmt.Sprintf("at most %d images are allowed", h.maxFiles))
		return
	}

	images := make([]pendingImage, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.maxFileSize {
			httpx.Fail(c, http.StatusBadRequest, fmt.Sprintf("%s exceeds %d bytes", fh.Filename, h.maxFileSize))
			return
		}
		ct, err := sniff(fh)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		images = append(images, pendingImage{fh: fh, contentType: ct})
	}

	ctx := c.Request.Context()
	now := time.Now()
	saved := make([]string, 0, len(images))
	urls := make([]string, 0, len(images))
	for _, img := range images {
		name := uploads.ObjectName(now, img.contentType)
		url, err := h.save(ctx, name, img)
		if err != nil {
			h.discard(ctx, saved)
			httpx.Error(c, err)
			return
		}
		saved = append(saved, name)
		urls = append(urls, url)
	}

	logger.FromContext(ctx, h.log).WithField("count", len(urls)).Info("images uploaded")
	httpx.OK(c, http.StatusCreated, gin.H{"images": urls})
}

func sniff(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	ct, ok := uploads.DetectImageType(head[:n])
	if !ok {
		return "", fmt.Errorf("%s is not a supported image", fh.Filename)
	}
	return ct, nil
}

func (h *Handler) save(ctx context.Context, name string, img pendingImage) (string, error) {
	f, err := img.fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", img.fh.Filename, err)
	}
	defer f.Close()

	return h.storage.Save(ctx, name, img.contentType, f, img.fh.Size)
}

// discard removes images stored earlier in a request that failed part way.
func (h *Handler) discard(ctx context.Context, names []string) {
	ctx = context.WithoutCancel(ctx)
	for _, name := range names {
		if err := h.storage.Delete(ctx, name); err != nil {
			logger.FromContext(ctx, h.log).WithError(err).WithField("name", name).Error("failed to remove image")
		}
	}
}
