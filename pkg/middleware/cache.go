package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ResponseStore holds rendered response bodies for the cache middleware.
type ResponseStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisResponseStore backs the response cache with redis.
func NewRedisResponseStore(client *redis.Client) ResponseStore {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

type cachingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cw *cachingWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cachingWriter) Write(b []byte) (int, error) {
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

// ResponseCache serves GET responses from the store for the configured TTL.
// Requests carrying an Authorization header bypass it entirely: the key is
// the request URI alone, so caching an authenticated response would hand one
// user's data to the next. Only 200 responses are stored; the store being
// down just skips the cache.
func ResponseCache(store ResponseStore, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || r.Method != http.MethodGet || r.Header.Get("Authorization") != "" {
				next.ServeHTTP(w, r)
				return
			}

			key := "resp:" + r.URL.RequestURI()

			cached, ok, err := store.Get(r.Context(), key)
			if err != nil {
				logger.Warn("Response cache read failed", zap.Error(err), zap.String("key", key))
			}
			if ok {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}

			cw := &cachingWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.statusCode == http.StatusOK && cw.body.Len() > 0 {
				if err := store.Set(r.Context(), key, cw.body.Bytes(), ttl); err != nil {
					logger.Warn("Response cache write failed", zap.Error(err), zap.String("key", key))
				}
			}
		})
	}
}
