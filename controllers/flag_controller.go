package controllers

import (
	"docvault/models"
	"docvault/services"
	"docvault/utils"

	"github.com/gin-gonic/gin"
)

type FlagController struct {
	flagService *services.FlagService
}

func NewFlagController() *FlagController {
	return &FlagController{
		flagService: services.NewFlagService(),
	}
}

// GetFlags returns all flags of the container
func (fc *FlagController) GetFlags(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	flags, err := fc.flagService.GetFlags(claims.ContainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Flags retrieved successfully", flags)
}

// GetFlag returns a specific flag
func (fc *FlagController) GetFlag(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	flagID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid flag ID")
		return
	}

	flag, err := fc.flagService.GetFlag(claims.ContainerID, flagID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Flag retrieved successfully", flag)
}

// CreateFlag creates a new flag
func (fc *FlagController) CreateFlag(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.FlagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	flag, err := fc.flagService.CreateFlag(claims.ContainerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Flag created successfully", flag)
}

// UpdateFlag replaces name, color and description of a flag
func (fc *FlagController) UpdateFlag(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	flagID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid flag ID")
		return
	}

	var req models.FlagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	flag, err := fc.flagService.UpdateFlag(claims.ContainerID, flagID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Flag updated successfully", flag)
}

// DeleteFlag removes a flag after clearing every document reference
func (fc *FlagController) DeleteFlag(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	flagID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid flag ID")
		return
	}

	if err := fc.flagService.DeleteFlag(claims.ContainerID, flagID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Flag deleted successfully", nil)
}
