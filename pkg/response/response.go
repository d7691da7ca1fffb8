// Package response renders the JSON envelopes every endpoint uses.
// Success payloads ride in "data"; errors carry a stable error_code that
// clients can switch on. Both envelopes echo the request ID for log
// correlation.
package response

import (
	"errors"
	"net/http"
	"time"

	"paylater-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	sendData(c, http.StatusOK, data)
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	sendData(c, http.StatusCreated, data)
}

// Error maps err onto the error envelope. *apperror.AppError values keep
// their code and status; anything else is masked as an opaque 500 so
// internal detail never reaches the client.
func Error(c *gin.Context, err error) {
	code, status, message := "SYS_000", http.StatusInternalServerError, "Internal server error"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code, status, message = appErr.Code, appErr.HTTPStatus, appErr.Message
	}

	c.JSON(status, ErrorResponse{
		ErrorCode: code,
		Message:   message,
		RequestID: requestID(c),
		Timestamp: stamp(),
	})
}

func sendData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
		Timestamp: stamp(),
	})
}

func stamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// requestID reads the ID set by the logging middleware, minting one for
// responses written before that middleware ran.
func requestID(c *gin.Context) string {
	if id, exists := c.Get(requestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
