package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/services"
)

// respondError maps service errors to HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrInvalidQuery):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrSessionExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrUserExists):
		status = http.StatusConflict
	}
	_ = ctx.Error(err)
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func paramID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}
