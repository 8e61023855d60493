package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/controllers"
	"github.com/jsench/Project-Wheatley/src/middleware"
	"github.com/jsench/Project-Wheatley/src/services"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {
	controller := controllers.NewUserController(service)

	// Public routes
	router.POST("/login", controller.AuthenticateUser)

	// Protected routes
	router.GET("/logout", middleware.AuthMiddleware(service), controller.Logout)

	users := router.Group("/admin/users")
	users.Use(middleware.AuthMiddleware(service))
	{
		users.GET("", controller.GetAllUsers)
		users.POST("", controller.CreateUser)
		users.DELETE("/:id", controller.DeleteUser)
	}
}
