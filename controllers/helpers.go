package controllers

import (
	"errors"
	"net/http"

	"docvault/services"
	"docvault/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP responses.
// Quota and validation rejections keep enough detail for an actionable
// message; they are never downgraded to generic failures.
func respondServiceError(c *gin.Context, err error) {
	if qe, ok := services.IsQuotaExceeded(err); ok {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "Upload quota exceeded", map[string]interface{}{
			"resource_class": qe.Class,
			"violation":      qe.Kind,
			"limit":          qe.Limit,
			"attempted":      qe.Actual,
		})
		return
	}

	var ve *services.ValidationError
	if errors.As(err, &ve) {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "Validation failed", map[string]interface{}{
			"field":  ve.Field,
			"reason": ve.Message,
		})
		return
	}

	if services.IsNotFound(err) {
		utils.NotFoundResponse(c, err.Error())
		return
	}

	if errors.Is(err, services.ErrConcurrencyConflict) {
		utils.ConflictResponse(c, "Concurrent modification, please retry")
		return
	}

	var ise *services.InconsistentStateError
	if errors.As(err, &ise) {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Storage state inconsistent", map[string]interface{}{
			"document_id": ise.DocumentID.Hex(),
		})
		return
	}

	utils.InternalServerErrorResponse(c, "")
}
