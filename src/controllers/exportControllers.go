package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/services"
)

type ExportController struct {
	service *services.ExportService
}

func NewExportController(service *services.ExportService) *ExportController {
	return &ExportController{service: service}
}

func (c *ExportController) LocationCopyCounts(ctx *gin.Context) {
	report, err := c.service.LocationCopyCounts(ctx.Request.Context())
	c.serve(ctx, report, err)
}

func (c *ExportController) IssueCopyCounts(ctx *gin.Context) {
	report, err := c.service.IssueCopyCounts(ctx.Request.Context())
	c.serve(ctx, report, err)
}

// Aggregate handles GET /export/:groupby/:column/:aggregate
func (c *ExportController) Aggregate(ctx *gin.Context) {
	report, err := c.service.Aggregate(ctx.Request.Context(),
		ctx.Param("groupby"), ctx.Param("column"), ctx.Param("aggregate"))
	c.serve(ctx, report, err)
}

func (c *ExportController) serve(ctx *gin.Context, report *services.Report, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	ctx.Status(http.StatusOK)
	if err := report.WriteCSV(ctx.Writer); err != nil {
		_ = ctx.Error(err)
	}
}
