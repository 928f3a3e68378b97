package routes

import (
	"docvault/controllers"
	"docvault/middleware"

	"github.com/gin-gonic/gin"
)

func FlagRoutes(r *gin.RouterGroup) {
	flagController := controllers.NewFlagController()

	flags := r.Group("/flags")
	flags.Use(middleware.AuthMiddleware())
	{
		flags.GET("/", flagController.GetFlags)
		flags.GET("/:id", flagController.GetFlag)
		flags.POST("/", flagController.CreateFlag)
		flags.PUT("/:id", flagController.UpdateFlag)
		flags.DELETE("/:id", flagController.DeleteFlag)
	}
}
