package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the body of every failed response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// FieldError describes one rejected request field
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type statusInfo struct {
	code     string
	fallback string
}

var statuses = map[int]statusInfo{
	http.StatusBadRequest:            {ErrCodeInvalidInput, "Invalid request"},
	http.StatusUnauthorized:          {ErrCodeUnauthorized, "Authentication required"},
	http.StatusNotFound:              {ErrCodeNotFound, "Resource not found"},
	http.StatusConflict:              {ErrCodeConflict, "Resource conflict"},
	http.StatusRequestEntityTooLarge: {ErrCodePayloadTooLarge, "Request body too large"},
	http.StatusInternalServerError:   {ErrCodeInternalError, "Internal server error"},
	http.StatusServiceUnavailable:    {ErrCodeServiceUnavailable, "Service temporarily unavailable"},
}

// Respond aborts the request with the standard error body for status.
// An empty message is replaced by the status' default text.
func Respond(c *gin.Context, status int, message string, details interface{}) {
	info, ok := statuses[status]
	if !ok {
		info = statuses[http.StatusInternalServerError]
	}
	if message == "" {
		message = info.fallback
	}
	c.AbortWithStatusJSON(status, &APIError{
		Code:    info.code,
		Message: message,
		Details: details,
	})
}

func Unauthorized(c *gin.Context, message string) {
	Respond(c, http.StatusUnauthorized, message, nil)
}

// InvalidCredentials is the 401 sent for a failed login. It uses its own
// code so clients can tell it apart from an expired session.
func InvalidCredentials(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, &APIError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid email or password",
	})
}

func NotFound(c *gin.Context, message string) {
	Respond(c, http.StatusNotFound, message, nil)
}

func BadRequest(c *gin.Context, message string) {
	Respond(c, http.StatusBadRequest, message, nil)
}

// InvalidBody reports a request body that failed to bind. Binding tag
// failures are listed per field in details.
func InvalidBody(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: strings.ToLower(fe.Field()),
			Rule:  fe.Tag(),
		})
	}
	Respond(c, http.StatusBadRequest, "Invalid request body", fields)
}

func Conflict(c *gin.Context, message string) {
	Respond(c, http.StatusConflict, message, nil)
}

func PayloadTooLarge(c *gin.Context, message string) {
	Respond(c, http.StatusRequestEntityTooLarge, message, nil)
}

func InternalError(c *gin.Context, message string) {
	Respond(c, http.StatusInternalServerError, message, nil)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Respond(c, http.StatusServiceUnavailable, message, nil)
}
