package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/services"
)

type StaticPageController struct {
	service *services.StaticPageService
}

func NewStaticPageController(service *services.StaticPageService) *StaticPageController {
	return &StaticPageController{service: service}
}

// Render handles /about and /about/:viewname
func (c *StaticPageController) Render(ctx *gin.Context) {
	page, err := c.service.Render(ctx.Request.Context(), ctx.Param("viewname"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}
