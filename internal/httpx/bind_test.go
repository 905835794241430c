package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	UserID string `json:"userId"`
}

func TestBindOptionalJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		body       io.Reader
		length     int64
		wantOK     bool
		wantUserID string
	}{
		{name: "no body", body: nil, length: 0, wantOK: true},
		{name: "empty body of unknown length", body: io.NopCloser(strings.NewReader("")), length: -1, wantOK: true},
		{name: "json", body: strings.NewReader(`{"userId":"u1"}`), length: 15, wantOK: true, wantUserID: "u1"},
		{name: "chunked json", body: io.NopCloser(strings.NewReader(`{"userId":"u2"}`)), length: -1, wantOK: true, wantUserID: "u2"},
		{name: "malformed", body: strings.NewReader(`{"userId":`), length: 10, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			c.Request = httptest.NewRequest(http.MethodPost, "/", tt.body)
			c.Request.ContentLength = tt.length
			c.Request.Header.Set("Content-Type", "application/json")

			var dst bindTarget
			ok := BindOptionalJSON(c, &dst)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantUserID, dst.UserID)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.JSONEq(t, `{"success":false,"message":"invalid request body"}`, rr.Body.String())
			}
		})
	}
}
