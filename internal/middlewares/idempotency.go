package middlewares

import (
	"bytes"
	"context"
	"customer-purchases/internal/repository/redis"
	"errors"
	"github.com/gin-gonic/gin"
	"log/slog"
	"net/http"
)

const (
	IdempotencyKeyHeader    = "Idempotency-Key"
	IdempotentReplayHeader  = "Idempotent-Replayed"
	maxIdempotencyKeyLength = 255
)

type ResponseStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
	GetResponse(ctx context.Context, key string) (redis.StoredResponse, error)
	StoreResponse(ctx context.Context, key string, resp redis.StoredResponse) error
}

type IdempotencyMiddleware struct {
	log   *slog.Logger
	store ResponseStore
}

func NewIdempotencyMiddleware(log *slog.Logger, store ResponseStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{
		log:   log,
		store: store,
	}
}

// Handle reserves the Idempotency-Key before the handler runs, so concurrent
// retries get 409 instead of a second execution. A finished 2xx response is
// replayed for later retries; any other outcome releases the key.
// A failed reservation is logged and the request goes through.
func (m *IdempotencyMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "middlewares.IdempotencyMiddleware.Handle"

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrIdempotencyKeyTooLong.Error()})
			return
		}

		storeKey := c.GetString(ClientIDKey) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key

		log := m.log.With(
			slog.String("op", op),
			slog.String("idempotency_key", key),
		)

		ctx := c.Request.Context()

		reserved, err := m.store.Reserve(ctx, storeKey)
		if err != nil {
			log.Error("failed to reserve idempotency key", slog.String("error", err.Error()))
			c.Next()
			return
		}

		if !reserved {
			m.replay(c, log, storeKey)
			return
		}

		writer := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// the client may be gone by now; the key still has to be settled
		ctx = context.WithoutCancel(ctx)

		status := writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			if err := m.store.Release(ctx, storeKey); err != nil {
				log.Error("failed to release idempotency key", slog.String("error", err.Error()))
			}
			return
		}

		resp := redis.StoredResponse{
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := m.store.StoreResponse(ctx, storeKey, resp); err != nil {
			log.Error("failed to store response", slog.String("error", err.Error()))
		}
	}
}

func (m *IdempotencyMiddleware) replay(c *gin.Context, log *slog.Logger, storeKey string) {
	stored, err := m.store.GetResponse(c.Request.Context(), storeKey)
	switch {
	case err == nil:
		log.Info("replaying stored response", slog.Int("status", stored.Status))
		c.Header(IdempotentReplayHeader, "true")
		c.Data(stored.Status, stored.ContentType, stored.Body)
		c.Abort()
	case errors.Is(err, redis.ErrResponsePending), errors.Is(err, redis.ErrResponseNotFound):
		log.Info("idempotency key is in use")
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": ErrIdempotencyKeyInUse.Error()})
	default:
		log.Error("failed to read stored response", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": ErrIdempotencyUnavailable.Error()})
	}
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
