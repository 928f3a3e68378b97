package routes

import (
	"docvault/middleware"
	"docvault/storage"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, blobStore storage.BlobStore) {
	// Global middleware
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.Recovery())

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		FolderRoutes(v1)
		DocumentRoutes(v1, blobStore)
		FlagRoutes(v1)
		QuotaRoutes(v1, blobStore)
		LimitRequestRoutes(v1)
	}

	// Admin routes
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		AdminRoutes(admin, blobStore)
	}
}
