package mockapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	ctxClaimsKey = "claims"
	requestIDKey = "X-Request-ID"
)

// RequestLogger logs every request with its status and duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDKey, requestID)
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logger.FromCtx(ctx).Info("HTTP Request",
			zap.String("layer", "mockapi"),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_ip", c.ClientIP()),
		)
	}
}

// RequireAuth rejects requests without a valid access token, read from
// the accessToken cookie or the Bearer header.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractAccessToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		claims, err := auth.VerifyToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

// Rate tiers: login and registration are strict.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors hands out one limiter per client and tier, forgetting clients
// idle for longer than idleAfter.
type visitors struct {
	mu        sync.Mutex
	byKey     map[string]*visitor
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
}

func newVisitors(limit float64, burst int) *visitors {
	if burst < 1 {
		burst = 1
	}
	return &visitors{
		byKey:     make(map[string]*visitor),
		limit:     rate.Limit(limit),
		burst:     burst,
		idleAfter: 3 * time.Minute,
	}
}

func (v *visitors) get(key string, limit rate.Limit, burst int) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	if now.Sub(v.lastSweep) > time.Minute {
		for k, vis := range v.byKey {
			if now.Sub(vis.lastSeen) > v.idleAfter {
				delete(v.byKey, k)
			}
		}
		v.lastSweep = now
	}

	vis, ok := v.byKey[key]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(limit, burst)}
		v.byKey[key] = vis
	}
	vis.lastSeen = now
	return vis.limiter
}

func (v *visitors) tier(c *gin.Context) (rate.Limit, int, string) {
	if strings.Contains(c.Request.URL.Path, "/auth/") {
		return limitStrict, burstStrict, "strict"
	}
	return v.limit, v.burst, "general"
}

// RateLimit answers 429 once a client exceeds its tier. The identity is
// the X-Device-ID header when present, else the client IP.
func RateLimit(v *visitors) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, burst, tier := v.tier(c)

		identity := "ip:" + c.ClientIP()
		if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
			identity = "device:" + deviceID
		}

		if !v.get(identity+":"+tier, limit, burst).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": http.StatusText(http.StatusTooManyRequests)})
			return
		}
		c.Next()
	}
}
