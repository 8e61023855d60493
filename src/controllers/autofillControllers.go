package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/services"
)

type AutofillController struct {
	service *services.AutofillService
}

func NewAutofillController(service *services.AutofillService) *AutofillController {
	return &AutofillController{service: service}
}

func (c *AutofillController) Locations(ctx *gin.Context) {
	matches, err := c.service.Locations(ctx.Request.Context(), ctx.Param("query"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, matches)
}

func (c *AutofillController) Provenances(ctx *gin.Context) {
	matches, err := c.service.Provenances(ctx.Request.Context(), ctx.Param("query"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, matches)
}

func (c *AutofillController) Collections(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.Collections(ctx.Param("query")))
}
