package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizops/ledger/internal/infrastructure/auth"
	"github.com/bizops/ledger/internal/infrastructure/config"
	"github.com/bizops/ledger/internal/interfaces/http/dto"
	"github.com/bizops/ledger/internal/interfaces/http/handler"
	"github.com/bizops/ledger/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handlers with nil services register routes but must never be invoked
func testHandlers() Handlers {
	return Handlers{
		System:       handler.NewSystemHandler(nil, "test"),
		Assets:       handler.NewAssetHandler(nil),
		Liabilities:  handler.NewLiabilityHandler(nil),
		Payments:     handler.NewPaymentHandler(nil),
		Approvals:    handler.NewApprovalHandler(nil),
		Transactions: handler.NewTransactionHandler(nil),
		Attachments:  handler.NewAttachmentHandler(nil),
	}
}

func testEngine() *gin.Engine {
	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars"})
	return NewEngine(EngineConfig{
		CORS:        middleware.DefaultCORSConfig(),
		MaxBodySize: 1 << 20,
		Auth:        middleware.JWTAuthMiddleware(jwtService),
	}, testHandlers())
}

func TestNewEngine_RouteTable(t *testing.T) {
	engine := testEngine()

	registered := map[string]bool{}
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /api/v1/health",
		"GET /api/v1/system/info",
		"GET /api/v1/assets",
		"GET /api/v1/assets/:id",
		"POST /api/v1/assets/:id/maintenance",
		"POST /api/v1/assets/:id/disposal",
		"POST /api/v1/assets/:id/depreciation",
		"GET /api/v1/assets/:id/depreciation",
		"PUT /api/v1/assets/:id/assignment",
		"DELETE /api/v1/assets/:id/assignment",
		"POST /api/v1/liabilities",
		"GET /api/v1/liabilities",
		"GET /api/v1/liabilities/:id",
		"POST /api/v1/payments/vendor",
		"POST /api/v1/payments/customer",
		"GET /api/v1/payments/:id",
		"POST /api/v1/approvals",
		"GET /api/v1/approvals/:id",
		"POST /api/v1/approvals/:id/approve",
		"POST /api/v1/approvals/:id/reject",
		"POST /api/v1/transactions/purchase",
		"POST /api/v1/transactions/sale",
		"POST /api/v1/transactions/internal",
		"GET /api/v1/transactions/:kind",
		"GET /api/v1/transactions/:kind/:id",
		"POST /api/v1/attachments",
	}
	for _, route := range want {
		assert.True(t, registered[route], "missing route %s", route)
	}
	assert.Len(t, engine.Routes(), len(want))
}

func TestNewEngine_Health(t *testing.T) {
	engine := testEngine()

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := serve(engine, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	}
}

func TestNewEngine_RequiresAuth(t *testing.T) {
	engine := testEngine()

	w := serve(engine, http.MethodGet, "/api/v1/assets")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.Error.RequestID)
}

func TestNewEngine_NoRoute(t *testing.T) {
	engine := testEngine()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}
