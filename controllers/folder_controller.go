package controllers

import (
	"docvault/models"
	"docvault/services"
	"docvault/utils"

	"github.com/gin-gonic/gin"
)

type FolderController struct {
	folderService *services.FolderService
}

func NewFolderController() *FolderController {
	return &FolderController{
		folderService: services.NewFolderService(),
	}
}

// GetFolders returns the folders under a parent (or the root level)
func (fc *FolderController) GetFolders(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	parentID, err := utils.ParseFolderID(c.Query("parent_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid parent folder ID")
		return
	}

	folders, err := fc.folderService.GetFolders(claims.ContainerID, parentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folders retrieved successfully", folders)
}

// GetFolder returns a specific folder
func (fc *FolderController) GetFolder(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	folder, err := fc.folderService.GetFolder(claims.ContainerID, folderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder retrieved successfully", folder)
}

// CreateFolder creates a new folder
func (fc *FolderController) CreateFolder(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.FolderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	folder, err := fc.folderService.CreateFolder(claims.ContainerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Folder created successfully", folder)
}

// UpdateFolder renames or restyles a folder
func (fc *FolderController) UpdateFolder(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	var req models.FolderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	folder, err := fc.folderService.UpdateFolder(claims.ContainerID, folderID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder updated successfully", folder)
}

// DeleteFolder removes a folder with the reparenting cascade
func (fc *FolderController) DeleteFolder(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	if err := fc.folderService.DeleteFolder(claims.ContainerID, folderID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder deleted successfully", nil)
}

// GetFolderPath returns the chain from the root down to the folder
func (fc *FolderController) GetFolderPath(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	path, err := fc.folderService.GetFolderPath(claims.ContainerID, folderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder path retrieved successfully", path)
}

// GetFolderContents returns the immediate subfolders and documents
func (fc *FolderController) GetFolderContents(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	folderID, err := utils.ParseFolderID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	contents, err := fc.folderService.GetFolderContents(claims.ContainerID, folderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder contents retrieved successfully", contents)
}
