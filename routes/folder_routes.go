package routes

import (
	"docvault/controllers"
	"docvault/middleware"

	"github.com/gin-gonic/gin"
)

func FolderRoutes(r *gin.RouterGroup) {
	folderController := controllers.NewFolderController()

	folders := r.Group("/folders")
	folders.Use(middleware.AuthMiddleware())
	{
		// Folder CRUD operations
		folders.GET("/", folderController.GetFolders)
		folders.GET("/:id", folderController.GetFolder)
		folders.POST("/", folderController.CreateFolder)
		folders.PUT("/:id", folderController.UpdateFolder)
		folders.DELETE("/:id", folderController.DeleteFolder)

		// Folder navigation
		folders.GET("/:id/path", folderController.GetFolderPath)
		folders.GET("/:id/contents", folderController.GetFolderContents)
	}
}
