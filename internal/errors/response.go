package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`   // code from codes.go
	Message string `json:"message"` // user-facing message
}

// ErrorTemplate is the page rendered for failures that end a page request.
const ErrorTemplate = "error.html"

// RespondWithError writes the error as JSON or as the error page, depending on what
// the client accepts.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.AbortWithStatusJSON(statusCode, ErrorResponse{
			Error:   errorCode,
			Message: message,
		})
		return
	}

	c.HTML(statusCode, ErrorTemplate, gin.H{
		"title":   http.StatusText(statusCode),
		"status":  statusCode,
		"code":    errorCode,
		"message": message,
	})
	c.Abort()
}

// RespondWithAppError maps the error kind to a status code.
func RespondWithAppError(c *gin.Context, err *AppError) {
	RespondWithError(c, err.Kind.HTTPStatus(), err.Code, err.Message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func Forbidden(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusForbidden, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	if message == "" {
		message = "The page you requested does not exist."
	}
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong on our side. Please try again later."
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
