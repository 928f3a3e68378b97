package routes

import (
	"docvault/controllers"
	"docvault/middleware"
	"docvault/storage"

	"github.com/gin-gonic/gin"
)

func DocumentRoutes(r *gin.RouterGroup, blobStore storage.BlobStore) {
	documentController := controllers.NewDocumentController(blobStore)

	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	{
		// Document CRUD operations
		documents.GET("/", documentController.GetDocuments)
		documents.GET("/:id", documentController.GetDocument)
		documents.POST("/upload", documentController.UploadDocument)
		documents.PUT("/:id", documentController.UpdateDocument)
		documents.DELETE("/:id", documentController.DeleteDocument)

		// Document operations
		documents.POST("/:id/move", documentController.MoveDocument)
		documents.GET("/:id/download", documentController.GetDownloadURL)
	}
}
