package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/services"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// GetTitles handles GET / with every title in title order
func (c *CatalogController) GetTitles(ctx *gin.Context) {
	titles, err := c.service.GetTitles(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"titles": titles})
}

func (c *CatalogController) GetTitle(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	detail, err := c.service.GetTitleDetail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func (c *CatalogController) GetIssue(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	detail, err := c.service.GetIssueDetail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GetCopy returns the full copy record, ghosts included
func (c *CatalogController) GetCopy(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	copyModel, err := c.service.GetCopyByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, copyModel)
}

func (c *CatalogController) GetCopyFragment(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	fragment, err := c.service.GetCopyFragment(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, fragment)
}

func (c *CatalogController) GetCopyByCatalogNumber(ctx *gin.Context) {
	copyModel, err := c.service.GetCopyByCatalogNumber(ctx.Request.Context(), ctx.Param("catalog"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, copyModel)
}
