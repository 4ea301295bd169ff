package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bizops/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// echo reports how many body bytes the handler could read
	newRouter := func(limit int64) *gin.Engine {
		router := gin.New()
		router.Use(RequestID(), BodyLimit(limit))
		router.POST("/transactions/purchase", func(c *gin.Context) {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.String(http.StatusBadRequest, "read failed")
				return
			}
			c.String(http.StatusOK, "%d", len(body))
		})
		router.GET("/assets", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		return router
	}
	payload := `{"amount":"1500.00","mode":"Cash","submode":"Petty Cash"}`

	tests := []struct {
		name          string
		limit         int64
		method        string
		path          string
		body          string
		contentLength int64
		want          int
		wantBody      string
	}{
		{"fits", 1024, http.MethodPost, "/transactions/purchase", payload, int64(len(payload)), http.StatusOK, "57"},
		{"declared too large", 50, http.MethodPost, "/transactions/purchase", payload, int64(len(payload)), http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge},
		{"streamed too large", 50, http.MethodPost, "/transactions/purchase", strings.Repeat("x", 100), -1, http.StatusBadRequest, "read failed"},
		{"no body", 10, http.MethodGet, "/assets", "", 0, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.ContentLength = tt.contentLength
			w := httptest.NewRecorder()

			newRouter(tt.limit).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			if tt.want == http.StatusRequestEntityTooLarge {
				assert.Contains(t, w.Body.String(), w.Header().Get(RequestIDHeader))
			}
		})
	}
}
