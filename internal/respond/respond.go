package respond

import (
	"net/http"

	"github.com/aidosqali/vidtube/internal/apperr"
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON shape for every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data"`
}

var devMode bool

// SetDevMode toggles inclusion of underlying error detail in failure payloads.
func SetDevMode(enabled bool) {
	devMode = enabled
}

// OK writes a success envelope with the given status.
func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Error translates a domain error into its HTTP status and failure envelope.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	message := apperr.MessageOf(err)

	env := Envelope{Success: false, Message: message, Errors: []string{message}}
	if devMode && kind == apperr.Internal && err != nil {
		env.Errors = append(env.Errors, err.Error())
	}

	c.AbortWithStatusJSON(statusFor(kind), env)
}

// ValidationError reports a malformed request with a field-level message.
func ValidationError(c *gin.Context, message string) {
	Error(c, apperr.New(apperr.Validation, message))
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Authentication:
		return http.StatusUnauthorized
	case apperr.Authorization:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
