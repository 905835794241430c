package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const MessageInvalidBody = "invalid request body"

// BindOptionalJSON decodes the body into dst when one is sent. An empty body,
// whatever its declared length, leaves dst zero-valued so required-field
// validation reports what is absent. Malformed JSON is answered with 400.
func BindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	Fail(c, http.StatusBadRequest, MessageInvalidBody)
	return false
}
