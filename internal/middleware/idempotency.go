package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-hr-ticketing/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyHeader   = "Idempotency-Key"
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// storedResponse is what a replay sends back: the original status and body.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// idempotencyCacheKey scopes a key to the caller and the concrete path, so
// reusing a key on another ticket is a different request.
func idempotencyCacheKey(c *gin.Context, idempKey string) string {
	actorID := ""
	if actor, ok := CurrentActor(c); ok {
		actorID = actor.ID.String()
	}
	return fmt.Sprintf("idemp:%s:%s:%s", c.Request.URL.Path, actorID, idempKey)
}

// Idempotency replays the stored response of a POST that already succeeded
// with the same Idempotency-Key, and rejects a duplicate that is still in
// flight. Requests without the header are untouched.
func Idempotency(rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("middleware.idempotency")
	return func(c *gin.Context) {
		idempKey := c.GetHeader(idempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := idempotencyCacheKey(c, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if cached, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var stored storedResponse
			if err := json.Unmarshal(cached, &stored); err == nil {
				c.Header("Idempotent-Replayed", "true")
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			log.Warn("idempotency cache entry unreadable, reprocessing", zap.String("key", cacheKey))
		} else if err != redis.Nil {
			log.Warn("idempotency cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}

		// SetNX fails when another request with the same key is running.
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "Request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}
		defer rdb.Del(ctx, lockKey)

		w := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := w.Status()
		if status < 200 || status >= 300 {
			return
		}
		stored, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		})
		if err != nil {
			log.Warn("idempotency response encode failed", zap.Error(err))
			return
		}
		if err := rdb.Set(ctx, cacheKey, stored, idempotencyCacheTTL).Err(); err != nil {
			log.Warn("idempotency cache write failed",
				zap.String("key", cacheKey),
				zap.Error(err),
			)
		}
	}
}
