package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trades_marketplace/internal/adapter/http/middleware"
	"trades_marketplace/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	customer     = &entities.Caller{UserID: "cust-1", Email: "cust@example.com", Role: entities.RoleCustomer}
	professional = &entities.Caller{UserID: "pro-1", Email: "pro@example.com", Role: entities.RoleProfessional}
)

func withCaller(caller *entities.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller != nil {
			middleware.SetCaller(c, caller)
		}
		c.Next()
	}
}

func newRouter(caller *entities.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withCaller(caller))
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	if body.Code != want {
		t.Fatalf("expected error code %s, got %s", want, body.Code)
	}
}
