package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizops/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerProtection(t *testing.T) {
	gin.SetMode(gin.TestMode)

	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "no"))
	}
	serve := func(cfg SwaggerConfig, auth gin.HandlerFunc) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/swagger/*any", SwaggerProtection(cfg, auth), func(c *gin.Context) {
			c.String(http.StatusOK, "docs")
		})
		// httptest requests come from 192.0.2.1
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name string
		cfg  SwaggerConfig
		auth gin.HandlerFunc
		want int
	}{
		{"disabled", SwaggerConfig{}, nil, http.StatusNotFound},
		{"open", SwaggerConfig{Enabled: true}, nil, http.StatusOK},
		{"ip listed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.0.2.1"}}, nil, http.StatusOK},
		{"cidr listed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.0.2.0/24"}}, nil, http.StatusOK},
		{"not listed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "garbage"}}, nil, http.StatusForbidden},
		{"auth required and refused", SwaggerConfig{Enabled: true, RequireAuth: true}, deny, http.StatusUnauthorized},
		{"auth required without middleware", SwaggerConfig{Enabled: true, RequireAuth: true}, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.cfg, tt.auth)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), dto.ErrCodeForbidden)
			}
		})
	}
}

func TestParseAllowList(t *testing.T) {
	ips, nets := parseAllowList([]string{" 127.0.0.1 ", "10.1.0.0/16", "nope", "300.1.1.1/8"})
	assert.Len(t, ips, 1)
	assert.Len(t, nets, 1)
}
