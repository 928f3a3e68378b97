package routes

import (
	"docvault/controllers"
	"docvault/middleware"
	"docvault/storage"

	"github.com/gin-gonic/gin"
)

func QuotaRoutes(r *gin.RouterGroup, blobStore storage.BlobStore) {
	quotaController := controllers.NewQuotaController(blobStore)

	quota := r.Group("/quota")
	quota.Use(middleware.AuthMiddleware())
	{
		quota.GET("/policy", quotaController.GetPolicy)
		quota.GET("/usage", quotaController.GetUsage)
	}
}
