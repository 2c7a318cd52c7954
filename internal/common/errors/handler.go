package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes failed requests as standardized JSON error bodies.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	RequestID string         `json:"requestId,omitempty"`
	Error     *StandardError `json:"error"`
}

// HandleRequestError normalizes err, logs it and aborts the request with the mapped status.
func (h *ErrorHandler) HandleRequestError(c *gin.Context, requestID string, err error) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	h.logger.Error("request failed", map[string]interface{}{
		"requestId":     requestID,
		"path":          c.Request.URL.Path,
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{RequestID: requestID, Error: stdErr})
}

// HTTPStatus maps an error code to the HTTP status returned to the browser.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeArticleValidationFailed:
		return http.StatusBadRequest
	case ErrCodeArticleNotFound, ErrCodeIndexNotFound:
		return http.StatusNotFound
	case ErrCodeAnalysisFailed, ErrCodeFeedFetchFailed:
		return http.StatusBadGateway
	case ErrCodeAnalysisTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
