package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorUsesCodeAsHTTPStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		code   int
		status string
	}{
		{CodeBadRequest, StatusFail},
		{CodeNotFound, StatusFail},
		{CodeConflict, StatusFail},
		{CodeTooManyRequests, StatusFail},
		{CodeInternal, StatusError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("request_id", "req-1")
		Error(c, tc.code, "boom")

		if w.Code != tc.code {
			t.Fatalf("code %d: expected http status %d, got %d", tc.code, tc.code, w.Code)
		}
		var body struct {
			StatusCode int               `json:"status_code"`
			Status     string            `json:"status"`
			Msg        string            `json:"msg"`
			Data       map[string]string `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.StatusCode != tc.code || body.Status != tc.status || body.Msg != "boom" {
			t.Fatalf("unexpected body: %+v", body)
		}
		if body.Data["request_id"] != "req-1" {
			t.Fatalf("expected request_id in data, got %+v", body.Data)
		}
	}
}

func TestCreatedReturns201(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, gin.H{"id": 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
}

func TestHTTPStatusForBusinessCodes(t *testing.T) {
	if HTTPStatus(CodeOK) != http.StatusOK {
		t.Fatalf("expected 200 for CodeOK")
	}
	if StatusLabel(CodeOK) != "" {
		t.Fatalf("expected empty label for success")
	}
}
