package public

import (
	"errors"
	"strings"

	handlershared "github.com/kitshop/internal/http/handlers/shared"
	"github.com/kitshop/internal/http/response"
	"github.com/kitshop/internal/repository"
	"github.com/kitshop/internal/service"

	"github.com/gin-gonic/gin"
)

func publicCatalogFilter(c *gin.Context) repository.CatalogListFilter {
	page, pageSize := handlershared.ParsePagination(c)
	return repository.CatalogListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   strings.TrimSpace(c.Query("category")),
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: true,
	}
}

// GetProducts 公开商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	filter := publicCatalogFilter(c)
	products, total, err := h.CatalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(filter.Page, filter.PageSize, total))
}

// GetProduct 公开商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.CatalogService.GetProduct(c.Request.Context(), id, true)
	if err != nil {
		if errors.Is(err, service.ErrCatalogItemNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// GetKits 公开套件列表
func (h *Handler) GetKits(c *gin.Context) {
	filter := publicCatalogFilter(c)
	if level := strings.TrimSpace(c.Query("level")); level != "" {
		filter.Category = level
	}
	kits, total, err := h.CatalogService.ListKits(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.kit_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, kits, response.BuildPagination(filter.Page, filter.PageSize, total))
}

// GetKit 公开套件详情
func (h *Handler) GetKit(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	kit, err := h.CatalogService.GetKit(c.Request.Context(), id, true)
	if err != nil {
		if errors.Is(err, service.ErrCatalogItemNotFound) {
			respondError(c, response.CodeNotFound, "error.kit_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.kit_fetch_failed", err)
		return
	}
	response.Success(c, kit)
}
