package admin

import (
	"errors"

	handlershared "github.com/kitshop/internal/http/handlers/shared"
	"github.com/kitshop/internal/http/response"
	"github.com/kitshop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// respondCatalogWriteError 目录写入错误映射
func respondCatalogWriteError(c *gin.Context, err error, notFoundKey string) {
	switch {
	case errors.Is(err, service.ErrCatalogNameRequired):
		respondError(c, response.CodeBadRequest, "error.catalog_name_required", nil)
	case errors.Is(err, service.ErrCatalogPriceInvalid):
		respondError(c, response.CodeBadRequest, "error.catalog_price_invalid", nil)
	case errors.Is(err, service.ErrCatalogItemNotFound):
		respondError(c, response.CodeNotFound, notFoundKey, nil)
	default:
		respondError(c, response.CodeInternal, "error.save_failed", err)
	}
}
