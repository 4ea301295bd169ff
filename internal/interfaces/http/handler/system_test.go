package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name         string
		db           Pinger
		wantStatus   int
		wantSuccess  bool
		wantDatabase string
	}{
		{"connected", fakePinger{}, http.StatusOK, true, "connected"},
		{"database down", fakePinger{err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable, false, "disconnected"},
		{"no database", nil, http.StatusOK, true, "not configured"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler(tt.db, "1.0.0")
			c, w := newTestContext()

			h.Health(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantSuccess, resp.Success)
			data, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantDatabase, data["database"])
		})
	}
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler(nil, "1.2.3")
	c, w := newTestContext()

	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeResponse(t, w).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ledger API", data["name"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.NotEmpty(t, data["go_version"])
	assert.NotEmpty(t, data["uptime"])
}
