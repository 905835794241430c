package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/error7buddy/KiLagbe.Com/internal/logger"
	"github.com/error7buddy/KiLagbe.Com/internal/uploads"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func newTestRouter(t *testing.T, maxFiles int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	storage, err := uploads.NewLocalStorage(t.TempDir(), "http://localhost:5000")
	require.NoError(t, err)

	r := gin.New()
	New(storage, maxFiles, 1<<20, logger.Discard()).Register(r.Group("/api"))
	return r
}

func upload(r http.Handler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestUpload(t *testing.T) {
	r := newTestRouter(t, 5)
	img := pngBytes(t)

	body, ct := multipartBody(t, map[string][]byte{"a.png": img, "b.png": img})
	rr := upload(r, body, ct)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Success bool     `json:"success"`
		Images  []string `json:"images"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Images, 2)
	for _, u := range resp.Images {
		assert.True(t, strings.HasPrefix(u, "http://localhost:5000/uploads/"), u)
		assert.True(t, strings.HasSuffix(u, ".png"), u)
	}
}

func TestUpload_Rejects(t *testing.T) {
	r := newTestRouter(t, 1)
	img := pngBytes(t)

	t.Run("too many files", func(t *testing.T) {
		body, ct := multipartBody(t, map[string][]byte{"a.png": img, "b.png": img})
		rr := upload(r, body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "at most 1 images")
	})

	t.Run("not an image", func(t *testing.T) {
		body, ct := multipartBody(t, map[string][]byte{"notes.txt": []byte("hello there")})
		rr := upload(r, body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "not a supported image")
	})

	t.Run("no files", func(t *testing.T) {
		body, ct := multipartBody(t, nil)
		rr := upload(r, body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		rr := upload(r, bytes.NewBufferString(`{"images":[]}`), "application/json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

type flakyStorage struct {
	failAt  int
	saved   []string
	deleted []string
}

func (s *flakyStorage) Save(_ context.Context, name, _ string, body io.Reader, _ int64) (string, error) {
	if len(s.saved) == s.failAt {
		return "", errors.New("bucket unavailable")
	}
	_, _ = io.Copy(io.Discard, body)
	s.saved = append(s.saved, name)
	return "https://cdn.example/" + name, nil
}

func (s *flakyStorage) Delete(_ context.Context, name string) error {
	s.deleted = append(s.deleted, name)
	return nil
}

func TestUpload_FailedSaveRemovesEarlierImages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	storage := &flakyStorage{failAt: 1}
	r := gin.New()
	New(storage, 5, 1<<20, logger.Discard()).Register(r.Group("/api"))

	img := pngBytes(t)
	body, ct := multipartBody(t, map[string][]byte{"a.png": img, "b.png": img})
	rr := upload(r, body, ct)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "bucket unavailable")
	require.Len(t, storage.saved, 1)
	assert.Equal(t, storage.saved, storage.deleted)
}

func TestUpload_NonImageStoresNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	storage := &flakyStorage{failAt: -1}
	r := gin.New()
	New(storage, 5, 1<<20, logger.Discard()).Register(r.Group("/api"))

	body, ct := multipartBody(t, map[string][]byte{"a.png": pngBytes(t), "notes.txt": []byte("hello there")})
	rr := upload(r, body, ct)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, storage.saved)
}
