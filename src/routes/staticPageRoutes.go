package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/controllers"
	"github.com/jsench/Project-Wheatley/src/services"
)

func SetupStaticPageRoutes(router *gin.Engine, service *services.StaticPageService) {
	controller := controllers.NewStaticPageController(service)

	router.GET("/about", controller.Render)
	router.GET("/about/:viewname", controller.Render)
}
