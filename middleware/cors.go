package middleware

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured frontend origins. CORS_ORIGINS is a
// comma-separated list; empty means allow any origin (development).
func CORSMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AddAllowHeaders("Authorization")
	config.AllowCredentials = true

	origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if origins == "" {
		config.AllowAllOrigins = false
		config.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		config.AllowOrigins = strings.Split(origins, ",")
	}

	return cors.New(config)
}
