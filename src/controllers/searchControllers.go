package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/services"
)

type SearchController struct {
	service *services.SearchService
}

func NewSearchController(service *services.SearchService) *SearchController {
	return &SearchController{service: service}
}

// Search serves /search and its path forms. Path segments take precedence
// over the field, value and order query parameters.
func (c *SearchController) Search(ctx *gin.Context) {
	params := services.ResolveSearchParams(services.SearchRequest{
		PathField: ctx.Param("field"),
		PathValue: ctx.Param("value"),
		PathOrder: ctx.Param("order"),
		Field:     ctx.Query("field"),
		Value:     ctx.Query("value"),
		Order:     ctx.Query("order"),
		Page:      ctx.Query("page"),
	})
	result, err := c.service.Search(ctx.Request.Context(), params)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
