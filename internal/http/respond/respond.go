// Package respond writes the JSON envelope shared by every endpoint:
// {"status": "success"|"error", "message": ..., "data": ...}.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every API response
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success writes a 200 envelope
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Created writes a 201 envelope
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Error writes an error envelope with the given status code
func Error(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{Status: StatusError, Message: message, Data: data})
}

// Abort writes an error envelope and stops the handler chain
func Abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Status: StatusError, Message: message})
}
