package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bizops/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentForm struct {
	Mode    string `json:"mode" binding:"required,mode"`
	Submode string `json:"submode" binding:"required,submode"`
	Amount  int    `json:"amount" binding:"gt=0"`
	Ref     string `json:"ref" binding:"omitempty,max=4"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req paymentForm
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(req))
	})
	return router
}

func post(router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func detailFields(resp dto.Response) map[string]string {
	out := map[string]string{}
	for _, d := range resp.Error.Details {
		out[d.Field] = d.Message
	}
	return out
}

func TestValidation_ModeAndSubmode(t *testing.T) {
	router := newValidationRouter()

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"valid pair", `{"mode":"Bank Transfer","submode":"NEFT","amount":1}`, nil},
		{"submode of another mode", `{"mode":"Cash","submode":"NEFT","amount":1}`, []string{"submode"}},
		{"unknown mode", `{"mode":"Barter","submode":"NEFT","amount":1}`, []string{"mode", "submode"}},
		{"missing everything", `{}`, []string{"mode", "submode", "amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := post(router, tt.body)
			if tt.fields == nil {
				assert.Equal(t, http.StatusOK, w.Code)
				return
			}
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)

			got := detailFields(resp)
			for _, f := range tt.fields {
				assert.Contains(t, got, f)
			}
		})
	}
}

func TestValidation_Messages(t *testing.T) {
	router := newValidationRouter()

	_, resp := post(router, `{"mode":"Cash","submode":"Wire","amount":0,"ref":"toolong"}`)
	require.NotNil(t, resp.Error)

	got := detailFields(resp)
	assert.Equal(t, "Submode does not belong to the selected mode", got["submode"])
	assert.Equal(t, "Must be greater than 0", got["amount"])
	assert.Equal(t, "Must be at most 4 characters", got["ref"])
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	router := newValidationRouter()

	w, resp := post(router, `{"mode":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}
