package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/controllers"
	"github.com/jsench/Project-Wheatley/src/services"
)

func SetupExportRoutes(router *gin.Engine, service *services.ExportService) {
	controller := controllers.NewExportController(service)

	router.GET("/location_copy_count_csv_export", controller.LocationCopyCounts)
	router.GET("/year_issue_copy_count_csv_export", controller.IssueCopyCounts)
	router.GET("/export/:groupby/:column/:aggregate", controller.Aggregate)
}
