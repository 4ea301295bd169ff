package middleware

import (
	"net/http"
	"strings"

	"github.com/bizops/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// MaxIdempotencyKeyLength bounds the Idempotency-Key header
const MaxIdempotencyKeyLength = 128

// IdempotencyKey rejects malformed Idempotency-Key headers before a
// handler claims them. The header is optional; when present it must be
// printable ASCII without spaces and at most MaxIdempotencyKeyLength long.
func IdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength || !printableToken(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Idempotency-Key must be 1-128 printable characters without spaces",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

func printableToken(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] > '~' {
			return false
		}
	}
	return true
}
