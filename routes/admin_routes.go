package routes

import (
	"docvault/controllers"
	"docvault/storage"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.RouterGroup, blobStore storage.BlobStore) {
	quotaController := controllers.NewQuotaController(blobStore)
	limitRequestController := controllers.NewLimitRequestController()

	// Limit request review
	r.GET("/limit-requests/pending", limitRequestController.GetPendingRequests)

	// Quota policy administration
	r.PUT("/quota/policy", quotaController.UpdatePolicy)

	// Blob-vs-metadata consistency sweep
	r.POST("/reconcile", quotaController.Reconcile)
}
