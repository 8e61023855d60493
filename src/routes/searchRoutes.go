package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/controllers"
	"github.com/jsench/Project-Wheatley/src/services"
)

func SetupSearchRoutes(router *gin.Engine, service *services.SearchService) {
	controller := controllers.NewSearchController(service)

	search := router.Group("/search")
	{
		search.GET("", controller.Search)
		search.GET("/:field/:value", controller.Search)
		search.GET("/:field/:value/:order", controller.Search)
	}
}
