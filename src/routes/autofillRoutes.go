package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/controllers"
	"github.com/jsench/Project-Wheatley/src/services"
)

func SetupAutofillRoutes(router *gin.Engine, service *services.AutofillService) {
	controller := controllers.NewAutofillController(service)

	autofill := router.Group("/autofill")
	{
		autofill.GET("/location", controller.Locations)
		autofill.GET("/location/:query", controller.Locations)
		autofill.GET("/provenance", controller.Provenances)
		autofill.GET("/provenance/:query", controller.Provenances)
		autofill.GET("/collection", controller.Collections)
		autofill.GET("/collection/:query", controller.Collections)
	}
}
