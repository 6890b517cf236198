package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

/* ==========================
   Context helpers
   ========================== */

func getCurrentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		}
	}
	return 0, false
}

func getCurrentFullName(c *gin.Context) string {
	if v, ok := c.Get("fullName"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

/* ==========================
   Query helpers
   ========================== */

// parseSkipLimit reads the skip/limit pair, clamping limit to [1, max].
func parseSkipLimit(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	skip := 0
	limit := defaultLimit

	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("skip"))); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && v >= 1 && v <= maxLimit {
		limit = v
	}
	return skip, limit
}

func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
