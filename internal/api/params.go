package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// param returns a form field, falling back to the query string.
func param(c *gin.Context, key string) string {
	return c.Request.FormValue(key)
}

// intParam parses an integer field. A missing field is 0.
func intParam(c *gin.Context, key string) (int64, error) {
	raw := strings.TrimSpace(param(c, key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidParam(key)
	}
	return n, nil
}

// decimalParam parses a money field. A missing field is 0.
func decimalParam(c *gin.Context, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(param(c, key))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalidParam(key)
	}
	return d, nil
}
