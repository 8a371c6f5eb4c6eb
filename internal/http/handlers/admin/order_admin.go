package admin

import (
	"errors"

	"github.com/kitshop/internal/http/response"
	"github.com/kitshop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminOrder 获取任意订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "error.order_id_invalid")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}

// ResendOrderConfirmation 重新发送订单确认邮件
func (h *Handler) ResendOrderConfirmation(c *gin.Context) {
	orderID, ok := parseIDParam(c, "error.order_id_invalid")
	if !ok {
		return
	}
	err := h.NotificationService.SendOrderConfirmation(c.Request.Context(), orderID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		return
	case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
		respondError(c, response.CodeBadRequest, "error.email_unavailable", nil)
		return
	default:
		respondError(c, response.CodeInternal, "error.email_send_failed", err)
		return
	}
	requestLog(c).Infow("admin_order_confirmation_resent", "operator_user_id", currentUserID(c), "order_id", orderID)
	response.Success(c, gin.H{"sent": true})
}
