package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"strconv"
	"time"
)

const (
	keyPrefix     = "idempotency:"
	pendingMarker = "pending"
	// PendingTTL bounds how long a reserved key blocks retries if its owner never finishes.
	PendingTTL = 30 * time.Second
)

var (
	// ErrResponseNotFound is returned when nothing is stored for an idempotency key.
	ErrResponseNotFound = errors.New("stored response not found")
	// ErrResponsePending is returned while the request holding the key is still running.
	ErrResponsePending = errors.New("request with this idempotency key is in progress")
)

type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type Storage struct {
	db  *redis.Client
	ttl time.Duration
}

func InitRedis(connStr, redisPassword, redisDbNumber string, ttl time.Duration) (*Storage, error) {
	const op = "storage.redis.InitRedis"

	dbNumber, err := strconv.Atoi(redisDbNumber)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid db number: %w", op, err)
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     connStr,
		Username: "",
		Password: redisPassword,
		DB:       dbNumber,
	})
	return &Storage{db: redisClient, ttl: ttl}, nil
}

func NewFromClient(client *redis.Client, ttl time.Duration) *Storage {
	return &Storage{db: client, ttl: ttl}
}

func (s *Storage) GetResponse(ctx context.Context, key string) (StoredResponse, error) {
	const op = "storage.Redis.GetResponse"

	raw, err := s.db.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return StoredResponse{}, fmt.Errorf("%s: %w", op, ErrResponseNotFound)
		}
		return StoredResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if string(raw) == pendingMarker {
		return StoredResponse{}, fmt.Errorf("%s: %w", op, ErrResponsePending)
	}

	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return StoredResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

// Reserve marks the key as in progress. It reports false when the key is
// already reserved or holds a stored response.
func (s *Storage) Reserve(ctx context.Context, key string) (bool, error) {
	const op = "storage.Redis.Reserve"

	ok, err := s.db.SetNX(ctx, keyPrefix+key, pendingMarker, PendingTTL).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

// Release drops a reservation so the key can be retried.
func (s *Storage) Release(ctx context.Context, key string) error {
	const op = "storage.Redis.Release"

	if err := s.db.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// StoreResponse replaces the reservation with the final response.
func (s *Storage) StoreResponse(ctx context.Context, key string, resp StoredResponse) error {
	const op = "storage.Redis.StoreResponse"

	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Set(ctx, keyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
