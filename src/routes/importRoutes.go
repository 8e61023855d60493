package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/controllers"
	"github.com/jsench/Project-Wheatley/src/middleware"
	"github.com/jsench/Project-Wheatley/src/services"
)

func SetupImportRoutes(router *gin.Engine, service *services.ImportService, sessions middleware.SessionChecker) {
	controller := controllers.NewImportController(service)

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(sessions))
	{
		admin.POST("/import", controller.Import)
	}
}
