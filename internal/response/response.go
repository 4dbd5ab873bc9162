// Package response maps service results and domain failures onto the HTTP
// surface: 404 for absence (including visibility failures), 400 for
// validation and illegal transitions, 409 for conflicts, 500 otherwise.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-app/shareit/internal/domain"
)

// ErrorBody is the error payload returned to clients.
type ErrorBody struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Paginated writes a 200 response with paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// BadRequest writes a 400 response with the given description.
func BadRequest(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: "error", Description: description})
}

// Error inspects the failure kind and writes the matching status code.
func Error(c *gin.Context, err error) {
	var (
		notFound     *domain.NotFoundError
		validation   *domain.ValidationError
		conflict     *domain.ConflictError
		invalidState *domain.InvalidStateError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorBody{Error: "error", Description: err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorBody{Error: "error", Description: err.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusBadRequest, ErrorBody{Error: "error", Description: err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorBody{Error: "error", Description: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "error", Description: err.Error()})
	}
}
