package public

import (
	"strings"

	handlershared "github.com/kitshop/internal/http/handlers/shared"
	"github.com/kitshop/internal/http/response"
	"github.com/kitshop/internal/i18n"
	"github.com/kitshop/internal/repository"
	"github.com/kitshop/internal/service"

	"github.com/gin-gonic/gin"
)

// KitRequestInfoRequest 套件咨询请求
type KitRequestInfoRequest struct {
	KitID   uint   `json:"kit_id"`
	KitName string `json:"kit_name"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// RequestKitInfo 访客提交套件咨询（无需登录）
func (h *Handler) RequestKitInfo(c *gin.Context) {
	var req KitRequestInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	created, err := h.KitRequestService.Create(c.Request.Context(), service.KitRequestInput{
		KitID:   req.KitID,
		KitName: req.KitName,
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Locale:  i18n.ResolveLocale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, kitRequestErrorRules, response.CodeInternal, "error.kit_request_failed")
		return
	}
	response.Created(c, gin.H{"request": created})
}

// ListKitRequests 咨询线索列表（无记录返回 404）
func (h *Handler) ListKitRequests(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	requests, total, err := h.KitRequestService.List(c.Request.Context(), repository.KitRequestListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Email:    strings.TrimSpace(c.Query("email")),
	})
	if err != nil {
		respondWithMappedError(c, err, kitRequestListErrorRules, response.CodeInternal, "error.kit_request_fetch_failed")
		return
	}
	response.SuccessWithPage(c, gin.H{"requests": requests}, response.BuildPagination(page, pageSize, total))
}
