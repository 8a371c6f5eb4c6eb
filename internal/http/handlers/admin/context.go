package admin

import (
	"strings"

	handlershared "github.com/kitshop/internal/http/handlers/shared"
	"github.com/kitshop/internal/http/response"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) uint {
	value, exists := c.Get(handlershared.ContextUserID)
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

func parseIDParam(c *gin.Context, invalidKey string) (uint, bool) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return id, true
}

func parseBoolQuery(c *gin.Context, name string) *bool {
	raw := strings.ToLower(strings.TrimSpace(c.Query(name)))
	switch raw {
	case "1", "true", "yes":
		v := true
		return &v
	case "0", "false", "no":
		v := false
		return &v
	default:
		return nil
	}
}
