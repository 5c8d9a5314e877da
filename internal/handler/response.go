package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcn-hotels/service-booking/internal/domain"
)

// envelope is the uniform response body shape.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: message})
}

// Error maps a domain error to its HTTP status: validation errors to
// 400, missing records to 404, conflicts to 409, everything else to a
// generic 500 without leaking internals.
func Error(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, envelope{Success: false, Error: err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, envelope{Success: false, Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, envelope{Success: false, Error: "internal server error"})
	}
}
