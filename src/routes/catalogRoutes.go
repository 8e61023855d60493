package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/controllers"
	"github.com/jsench/Project-Wheatley/src/services"
)

func SetupCatalogRoutes(router *gin.Engine, service *services.CatalogService) {
	controller := controllers.NewCatalogController(service)

	// Public routes
	router.GET("/", controller.GetTitles)
	router.GET("/title/:id", controller.GetTitle)
	router.GET("/issue/:id", controller.GetIssue)
	router.GET("/copy/:id", controller.GetCopy)
	router.GET("/copydata/:id", controller.GetCopyFragment)
	router.GET("/wc/:catalog", controller.GetCopyByCatalogNumber)
}
