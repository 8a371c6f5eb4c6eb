package admin

import (
	"errors"

	"github.com/kitshop/internal/http/response"
	"github.com/kitshop/internal/service"

	"github.com/gin-gonic/gin"
)

type kitRequestStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateKitRequestStatus 更新咨询跟进状态
func (h *Handler) UpdateKitRequestStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "error.kit_request_id_invalid")
	if !ok {
		return
	}
	var req kitRequestStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	updated, err := h.KitRequestService.UpdateStatus(c.Request.Context(), id, req.Status)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrKitRequestStatusInvalid):
		respondError(c, response.CodeBadRequest, "error.kit_request_status_invalid", nil)
		return
	case errors.Is(err, service.ErrKitRequestNotFound):
		respondError(c, response.CodeNotFound, "error.kit_request_not_found", nil)
		return
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	requestLog(c).Infow("admin_kit_request_status_updated",
		"operator_user_id", currentUserID(c),
		"kit_request_id", id,
		"status", updated.Status,
	)
	response.Success(c, updated)
}
