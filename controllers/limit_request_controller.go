package controllers

import (
	"docvault/models"
	"docvault/services"
	"docvault/utils"

	"github.com/gin-gonic/gin"
)

type LimitRequestController struct {
	limitRequestService *services.LimitRequestService
}

func NewLimitRequestController() *LimitRequestController {
	return &LimitRequestController{
		limitRequestService: services.NewLimitRequestService(),
	}
}

// Submit files a limit increase request for review
func (lc *LimitRequestController) Submit(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.LimitIncreaseSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	request, err := lc.limitRequestService.Submit(claims.ContainerID, claims.UserID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Limit increase request submitted successfully", request)
}

// GetRequest returns a specific limit increase request
func (lc *LimitRequestController) GetRequest(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	requestID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	request, err := lc.limitRequestService.GetRequest(claims.ContainerID, requestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Limit request retrieved successfully", request)
}

// GetPendingRequests lists the requests awaiting a review decision
func (lc *LimitRequestController) GetPendingRequests(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	requests, err := lc.limitRequestService.GetPendingRequests(claims.ContainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pending limit requests retrieved successfully", requests)
}
