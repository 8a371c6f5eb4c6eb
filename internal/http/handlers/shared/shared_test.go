package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kitshop/internal/http/response"

	"github.com/gin-gonic/gin"
)

func TestRespondErrorLocalizesMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=es", nil)

	RespondError(c, response.CodeNotFound, "error.cart_item_not_found", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Msg != "El producto no está en el carrito" {
		t.Fatalf("unexpected localized message: %s", body.Msg)
	}
}

func TestRespondErrorHidesDetailOutsideDebug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondError(c, response.CodeInternal, "error.internal", errors.New("db exploded"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != response.StatusError {
		t.Fatalf("expected error status, got %v", body["status"])
	}
	if data, ok := body["data"].(map[string]interface{}); ok {
		if _, leaked := data["error"]; leaked {
			t.Fatalf("error detail leaked outside debug mode")
		}
	}
}

func TestNormalizePagination(t *testing.T) {
	page, size := NormalizePagination(0, 1000)
	if page != 1 || size != 100 {
		t.Fatalf("unexpected normalized pagination: %d %d", page, size)
	}
}
