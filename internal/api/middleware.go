package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	rateLimitMax    = 1000
	rateLimitWindow = 15 * time.Minute
)

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range s.cfg.CORSOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()

		s.log.Info("http_request",
			"method", method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", clientIP,
		)
	}
}

// rateLimitMiddleware usa janela deslizante no redis quando disponível;
// sem redis cai para o token bucket em processo.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if s.redis == nil {
			if !s.limiter.Allow(clientIP) {
				tooManyRequests(c, int64(rateLimitWindow.Seconds()))
				return
			}
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:sw:%s", clientIP)
		ok, retryAfter, err := s.redis.SlidingWindowAllow(c.Request.Context(), key, rateLimitMax, rateLimitWindow)
		if err != nil {
			s.log.Warn("rate_limit_error", "error", err)
			c.Next()
			return
		}
		if !ok {
			tooManyRequests(c, retryAfter)
			return
		}

		c.Next()
	}
}

func tooManyRequests(c *gin.Context, retryAfter int64) {
	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"message": "Muitas requisições. Tente novamente em instantes.",
	})
	c.Abort()
}

func (s *Server) inputValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		for _, values := range query {
			for i, value := range values {
				sanitized := sanitizeInput(value)
				if len(sanitized) > 500 {
					c.JSON(http.StatusBadRequest, gin.H{
						"success": false,
						"message": "Parâmetro muito longo.",
					})
					c.Abort()
					return
				}
				values[i] = sanitized
			}
		}

		for _, param := range c.Params {
			if len(param.Value) > 100 {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Parâmetro muito longo.",
				})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func sanitizeInput(input string) string {
	// remove caracteres de controle (exceto \n, \r, \t)
	result := make([]rune, 0, len(input))
	for _, r := range input {
		if r >= 32 || r == '\n' || r == '\r' || r == '\t' {
			result = append(result, r)
		}
	}
	return string(result)
}
