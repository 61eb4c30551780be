package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiushui/site-core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitPrefix = "site:rate_limit"

// RateLimit enforces a fixed window of max requests per client IP and scope.
// Redis failures let the request through.
func RateLimit(rdb *redis.Client, scope string, max int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	if window <= 0 {
		window = time.Minute
	}
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rdb == nil || max <= 0 || ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("%s:%s:%s:%d", rateLimitPrefix, scope, ip, bucket)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limit check failed", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, window+time.Second)
		}

		if count > int64(max) {
			c.Header("Retry-After", strconv.Itoa(int(window/time.Second)))
			response.TooManyRequests(c, "slow down, too many requests")
			return
		}
		c.Next()
	}
}
