// Package httpx holds the JSON envelope and error-to-status mapping shared by
// every resource handler.
package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/internal/common"
)

const ctxLogger = "logger"

// MessageMethodNotAllowed is the body text for unsupported verbs.
const MessageMethodNotAllowed = "Method Not Allowed"

// SetLogger stores the request-scoped logger on c.
func SetLogger(c *gin.Context, l logrus.FieldLogger) {
	c.Set(ctxLogger, l)
}

// Log returns the request-scoped logger, or the standard logger when none is set.
func Log(c *gin.Context) logrus.FieldLogger {
	if v, ok := c.Get(ctxLogger); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return logrus.StandardLogger()
}

// OK writes {success:true, ...payload}.
func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail writes {success:false, message}.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// AbortFail is Fail for middleware: it also stops the handler chain.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// Error classifies err into the status code of its taxonomy and writes it.
func Error(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		Log(c).WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	Fail(c, status, err.Error())
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// MethodNotAllowed is installed as the engine's NoMethod handler.
func MethodNotAllowed(c *gin.Context) {
	Fail(c, http.StatusMethodNotAllowed, MessageMethodNotAllowed)
}

// NotFoundRoute is installed as the engine's NoRoute handler.
func NotFoundRoute(c *gin.Context) {
	Fail(c, http.StatusNotFound, "Route not found")
}
