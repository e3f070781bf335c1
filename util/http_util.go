// util/http_util.go
package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("requestID", GetRequestID(c)),
	}
	if code >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}
	c.JSON(code, gin.H{"error": message})
}

// StatusFor maps the lookup error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, postcache_errors.ErrInvalidKey),
		errors.Is(err, postcache_errors.ErrInvalidIDList),
		errors.Is(err, postcache_errors.ErrInvalidPostData):
		return http.StatusBadRequest
	case errors.Is(err, postcache_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, postcache_errors.ErrSourceUnavailable),
		errors.Is(err, postcache_errors.ErrCacheUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, postcache_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithLookupError renders err with the status StatusFor assigns.
// Validation failures echo the error; everything else gets a fixed message.
func RespondWithLookupError(c *gin.Context, resource string, err error) {
	code := StatusFor(err)
	var message string
	switch code {
	case http.StatusBadRequest:
		message = err.Error()
	case http.StatusNotFound:
		message = resource + " not found"
	case http.StatusServiceUnavailable:
		if errors.Is(err, postcache_errors.ErrCacheUnavailable) {
			message = postcache_errors.ErrCacheUnavailable.Error()
		} else {
			message = postcache_errors.ErrSourceUnavailable.Error()
		}
	case http.StatusUnauthorized:
		message = postcache_errors.ErrUnauthorized.Error()
	default:
		message = postcache_errors.ErrInternalServer.Error()
	}
	RespondWithError(c, code, message, err)
}

func GetRequestID(c *gin.Context) string {
	requestID, exists := c.Get("requestID")
	if !exists {
		return ""
	}
	id, _ := requestID.(string)
	return id
}
