package controllers

import (
	"docvault/models"
	"docvault/services"
	"docvault/storage"
	"docvault/utils"

	"github.com/gin-gonic/gin"
)

type QuotaController struct {
	quotaService     *services.QuotaService
	reconcileService *services.ReconcileService
}

func NewQuotaController(blobStore storage.BlobStore) *QuotaController {
	return &QuotaController{
		quotaService:     services.NewQuotaService(),
		reconcileService: services.NewReconcileService(blobStore),
	}
}

// GetPolicy returns the container's quota policy
func (qc *QuotaController) GetPolicy(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	policy, err := qc.quotaService.GetPolicy(claims.ContainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Quota policy retrieved successfully", policy)
}

// GetUsage returns the policy alongside freshly recomputed usage counts
func (qc *QuotaController) GetUsage(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	report, err := qc.quotaService.GetReport(claims.ContainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Quota usage retrieved successfully", report)
}

// UpdatePolicy replaces the per-class ceilings. Reserved for the
// administration review collaborator.
func (qc *QuotaController) UpdatePolicy(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.QuotaPolicyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	policy, err := qc.quotaService.UpdatePolicy(claims.ContainerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Quota policy updated successfully", policy)
}

// Reconcile runs the blob-vs-metadata consistency sweep
func (qc *QuotaController) Reconcile(c *gin.Context) {
	claims, exists := utils.GetClaimsFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	report, err := qc.reconcileService.Reconcile(claims.ContainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Reconciliation completed", report)
}
