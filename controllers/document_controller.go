package controllers

import (
	"io"
	"mime"
	"path/filepath"

	"docvault/models"
	"docvault/services"
	"docvault/storage"
	"docvault/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DocumentController struct {
	documentService *services.DocumentService
}

func NewDocumentController(blobStore storage.BlobStore) *DocumentController {
	return &DocumentController{
		documentService: services.NewDocumentService(blobStore),
	}
}

// GetDocuments lists the catalog of one folder (or the root), newest first
func (dc *DocumentController) GetDocuments(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	folderID, err := utils.ParseFolderID(c.Query("folder_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	filters := &services.DocumentFilters{
		Category: c.Query("category"),
	}
	if flagParam := c.Query("flag_id"); flagParam != "" {
		flagID, err := utils.StringToObjectID(flagParam)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid flag ID")
			return
		}
		filters.FlagID = &flagID
	}

	documents, err := dc.documentService.GetDocuments(claims.ContainerID, folderID, filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Documents retrieved successfully", documents)
}

// GetDocument returns a specific document
func (dc *DocumentController) GetDocument(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	documentID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID")
		return
	}

	document, err := dc.documentService.GetDocument(claims.ContainerID, documentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Document retrieved successfully", document)
}

// UploadDocument admits a multipart upload into the catalog
func (dc *DocumentController) UploadDocument(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.DocumentUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}

	upload := &services.DocumentUpload{
		OriginalName: fileHeader.Filename,
		ContentType:  contentType,
		Size:         fileHeader.Size,
		Content:      content,
	}

	document, err := dc.documentService.UploadDocument(claims.ContainerID, claims.UserID, upload, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Document uploaded successfully", &models.UploadResponse{Document: document})
}

// UpdateDocument changes description, category, flag or tags
func (dc *DocumentController) UpdateDocument(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	documentID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID")
		return
	}

	var req models.DocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	document, err := dc.documentService.UpdateDocument(claims.ContainerID, documentID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Document updated successfully", document)
}

// MoveDocument reassigns a document to another folder or to the root
func (dc *DocumentController) MoveDocument(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	documentID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID")
		return
	}

	var req models.DocumentMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	var targetFolderID *primitive.ObjectID
	targetFolderID, err = utils.ParseFolderID(req.FolderID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid target folder ID")
		return
	}

	if err := dc.documentService.MoveDocument(claims.ContainerID, documentID, targetFolderID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Document moved successfully", nil)
}

// DeleteDocument removes the blob, then the catalog row
func (dc *DocumentController) DeleteDocument(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	documentID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID")
		return
	}

	if err := dc.documentService.DeleteDocument(claims.ContainerID, documentID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Document deleted successfully", nil)
}

// GetDownloadURL returns a short-lived URL for the document's blob
func (dc *DocumentController) GetDownloadURL(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	documentID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid document ID")
		return
	}

	url, err := dc.documentService.GetDownloadURL(claims.ContainerID, documentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Download URL generated successfully", gin.H{"url": url})
}
