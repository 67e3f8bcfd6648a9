package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CartCookie = "cart_id"

	cartIDKey     = "cartID"
	cartCookieAge = 30 * 24 * 60 * 60
)

// CartID hands every visitor a cart_id cookie. Missing or malformed values are
// replaced with a fresh UUID.
func CartID() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(CartCookie)
		id, parseErr := uuid.Parse(value)
		if err != nil || parseErr != nil {
			id = uuid.New()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CartCookie, id.String(), cartCookieAge, "/", "", false, true)
		}

		c.Set(cartIDKey, id.String())
		c.Next()
	}
}

func cartID(c *gin.Context) string {
	return c.GetString(cartIDKey)
}

func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	// the cart cookie only crosses origins when they are listed explicitly
	if allowsAll(origins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("cart_id", cartID(c)))
	}
}
