package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/kalakar-academy/academy-api/pkg/errors"
)

// Envelope matches the wire contract the site's frontend already speaks:
// a flat success flag with message/data on the happy path and
// error/details on failures.
type Envelope struct {
	Success      bool        `json:"success"`
	EnrollmentID string      `json:"enrollmentId,omitempty"`
	Message      string      `json:"message,omitempty"`
	Data         interface{} `json:"data,omitempty"`
	Count        *int        `json:"count,omitempty"`
	Error        string      `json:"error,omitempty"`
	Details      string      `json:"details,omitempty"`
}

// Saved acknowledges a stored enrollment, echoing its id at the top
// level the way the frontend expects.
func Saved(c *gin.Context, enrollmentID, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, EnrollmentID: enrollmentID, Message: message, Data: data})
}

// OK sends a success response with a message and optional payload.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// List sends a success response carrying a collection and its count.
func List(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	envelope := Envelope{Success: false, Error: appErr.Message}
	if appErr.Err != nil {
		envelope.Details = appErr.Err.Error()
	}
	c.JSON(appErr.Status, envelope)
}
