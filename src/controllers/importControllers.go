package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/dtos"
	"github.com/jsench/Project-Wheatley/src/services"
)

type ImportController struct {
	service *services.ImportService
}

func NewImportController(service *services.ImportService) *ImportController {
	return &ImportController{service: service}
}

type importURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// Import handles POST /admin/import. It takes either a multipart "file"
// upload or a JSON body with a Google Drive url.
func (c *ImportController) Import(ctx *gin.Context) {
	var (
		result *dtos.ImportResultDTO
		err    error
	)
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		header, ferr := ctx.FormFile("file")
		if ferr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
			return
		}
		file, ferr := header.Open()
		if ferr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": ferr.Error()})
			return
		}
		defer file.Close()
		result, err = c.service.ImportFile(ctx.Request.Context(), file, header.Filename)
	} else {
		var req importURLRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err = c.service.ImportURL(ctx.Request.Context(), req.URL)
	}

	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, result)
	case result != nil:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "result": result})
	case errors.Is(err, services.ErrInvalidQuery):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		respondError(ctx, err)
	}
}
