package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/JovanaT99/eventsApp/apperrors"
)

type QuotaRule struct {
	Limit  int                       // requests allowed per window
	Window time.Duration             // e.g. 24h
	KeyFn  func(*gin.Context) string // "" skips the quota for this request
}

// Quota counts requests per key in Redis with INCR + EXPIRE. When Redis is
// unreachable the request is let through.
func Quota(rdb *redis.Client, rule QuotaRule, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rule.KeyFn(c)
		if key == "" {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("quota check skipped", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		// first hit in this window starts the clock
		if n == 1 {
			_ = rdb.Expire(ctx, key, rule.Window).Err()
		}
		if int(n) > rule.Limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperrors.Body{
				Error: "Usage quota exceeded. Please try again later.",
			})
			return
		}
		c.Header("X-Quota-Used", fmt.Sprintf("%d/%d", n, rule.Limit))
		c.Next()
	}
}

// WriteQuotaKey charges non-GET requests to the client IP, per day.
func WriteQuotaKey(c *gin.Context) string {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions {
		return ""
	}
	return "quota:ip:" + c.ClientIP() + ":day"
}
