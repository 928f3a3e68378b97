package routes

import (
	"docvault/controllers"
	"docvault/middleware"

	"github.com/gin-gonic/gin"
)

func LimitRequestRoutes(r *gin.RouterGroup) {
	limitRequestController := controllers.NewLimitRequestController()

	requests := r.Group("/limit-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("/", limitRequestController.Submit)
		requests.GET("/:id", limitRequestController.GetRequest)
	}
}
