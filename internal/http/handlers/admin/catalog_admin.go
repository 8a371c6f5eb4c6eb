package admin

import (
	"errors"
	"strings"

	handlershared "github.com/kitshop/internal/http/handlers/shared"
	"github.com/kitshop/internal/http/response"
	"github.com/kitshop/internal/repository"
	"github.com/kitshop/internal/service"

	"github.com/gin-gonic/gin"
)

func adminCatalogFilter(c *gin.Context) repository.CatalogListFilter {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.CatalogListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if active := parseBoolQuery(c, "active"); active != nil && *active {
		filter.OnlyActive = true
	}
	return filter
}

// GetAdminProducts 后台商品列表（含下架商品）
func (h *Handler) GetAdminProducts(c *gin.Context) {
	filter := adminCatalogFilter(c)
	products, total, err := h.CatalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(filter.Page, filter.PageSize, total))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondCatalogWriteError(c, err, "error.product_not_found")
		return
	}
	requestLog(c).Infow("admin_product_created", "operator_user_id", currentUserID(c), "product_id", product.ID)
	response.Created(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.bad_request")
	if !ok {
		return
	}
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondCatalogWriteError(c, err, "error.product_not_found")
		return
	}
	requestLog(c).Infow("admin_product_updated", "operator_user_id", currentUserID(c), "product_id", product.ID)
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.bad_request")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCatalogItemNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.delete_failed", err)
		return
	}
	requestLog(c).Infow("admin_product_deleted", "operator_user_id", currentUserID(c), "product_id", id)
	response.Success(c, nil)
}

// GetAdminKits 后台套件列表（含下架套件）
func (h *Handler) GetAdminKits(c *gin.Context) {
	filter := adminCatalogFilter(c)
	kits, total, err := h.CatalogService.ListKits(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.kit_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, kits, response.BuildPagination(filter.Page, filter.PageSize, total))
}

// CreateKit 创建套件
func (h *Handler) CreateKit(c *gin.Context) {
	var req service.KitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	kit, err := h.CatalogService.CreateKit(c.Request.Context(), req)
	if err != nil {
		respondCatalogWriteError(c, err, "error.kit_not_found")
		return
	}
	requestLog(c).Infow("admin_kit_created", "operator_user_id", currentUserID(c), "kit_id", kit.ID)
	response.Created(c, kit)
}

// UpdateKit 更新套件
func (h *Handler) UpdateKit(c *gin.Context) {
	id, ok := parseIDParam(c, "error.bad_request")
	if !ok {
		return
	}
	var req service.KitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	kit, err := h.CatalogService.UpdateKit(c.Request.Context(), id, req)
	if err != nil {
		respondCatalogWriteError(c, err, "error.kit_not_found")
		return
	}
	requestLog(c).Infow("admin_kit_updated", "operator_user_id", currentUserID(c), "kit_id", kit.ID)
	response.Success(c, kit)
}

// DeleteKit 删除套件
func (h *Handler) DeleteKit(c *gin.Context) {
	id, ok := parseIDParam(c, "error.bad_request")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteKit(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCatalogItemNotFound) {
			respondError(c, response.CodeNotFound, "error.kit_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.delete_failed", err)
		return
	}
	requestLog(c).Infow("admin_kit_deleted", "operator_user_id", currentUserID(c), "kit_id", id)
	response.Success(c, nil)
}
