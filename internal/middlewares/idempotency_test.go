package middlewares

import (
	"context"
	"customer-purchases/internal/repository/redis"
	"customer-purchases/internal/tests/mocks"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const purchasesKey = ":POST:/purchases:key-1"

func newIdempotencyRouter(store ResponseStore, status int, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.POST("/purchases", NewIdempotencyMiddleware(log, store).Handle(), func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	})
	return r
}

func postPurchase(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_WithoutKeyPassesThrough(t *testing.T) {
	store := new(mocks.ResponseStoreMock)
	calls := 0
	r := newIdempotencyRouter(store, http.StatusCreated, &calls)

	w := postPurchase(r, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	store.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "StoreResponse", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdempotency_StoresFirstSuccessfulResponse(t *testing.T) {
	store := new(mocks.ResponseStoreMock)
	store.On("Reserve", mock.Anything, purchasesKey).Return(true, nil).Once()
	store.On("StoreResponse", mock.Anything, purchasesKey, mock.MatchedBy(func(resp redis.StoredResponse) bool {
		return resp.Status == http.StatusCreated &&
			string(resp.Body) == `{"call":1}` &&
			strings.HasPrefix(resp.ContentType, "application/json")
	})).Return(nil).Once()

	calls := 0
	r := newIdempotencyRouter(store, http.StatusCreated, &calls)

	w := postPurchase(r, "key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"call":1}`, w.Body.String())
	assert.Empty(t, w.Header().Get(IdempotentReplayHeader))
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	store := new(mocks.ResponseStoreMock)
	store.On("Reserve", mock.Anything, purchasesKey).Return(false, nil).Once()
	store.On("GetResponse", mock.Anything, purchasesKey).
		Return(redis.StoredResponse{
			Status:      http.StatusCreated,
			ContentType: "application/json; charset=utf-8",
			Body:        []byte(`{"call":1}`),
		}, nil).Once()

	calls := 0
	r := newIdempotencyRouter(store, http.StatusCreated, &calls)

	w := postPurchase(r, "key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"call":1}`, w.Body.String())
	assert.Equal(t, "true", w.Header().Get(IdempotentReplayHeader))
	assert.Equal(t, 0, calls)
	store.AssertNotCalled(t, "StoreResponse", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdempotency_RejectsRetryWhileFirstRequestRuns(t *testing.T) {
	tests := []struct {
		name    string
		readErr error
	}{
		{name: "reservation pending", readErr: fmt.Errorf("get: %w", redis.ErrResponsePending)},
		{name: "reservation expired between calls", readErr: fmt.Errorf("get: %w", redis.ErrResponseNotFound)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.ResponseStoreMock)
			store.On("Reserve", mock.Anything, purchasesKey).Return(false, nil).Once()
			store.On("GetResponse", mock.Anything, purchasesKey).
				Return(redis.StoredResponse{}, tt.readErr).Once()

			calls := 0
			r := newIdempotencyRouter(store, http.StatusCreated, &calls)

			w := postPurchase(r, "key-1")

			assert.Equal(t, http.StatusConflict, w.Code)
			assert.Contains(t, w.Body.String(), ErrIdempotencyKeyInUse.Error())
			assert.Equal(t, 0, calls)
			store.AssertNotCalled(t, "StoreResponse", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestIdempotency_ConcurrentRetriesRunHandlerOnce(t *testing.T) {
	store := newReservingStore()
	release := make(chan struct{})
	entered := make(chan struct{})
	calls := 0

	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.POST("/purchases", NewIdempotencyMiddleware(log, store).Handle(), func(c *gin.Context) {
		calls++
		close(entered)
		<-release
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	first := make(chan *httptest.ResponseRecorder)
	go func() { first <- postPurchase(r, "key-1") }()
	<-entered

	second := postPurchase(r, "key-1")
	close(release)
	firstResp := <-first

	third := postPurchase(r, "key-1")

	assert.Equal(t, http.StatusCreated, firstResp.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, "true", third.Header().Get(IdempotentReplayHeader))
	assert.JSONEq(t, firstResp.Body.String(), third.Body.String())
	assert.Equal(t, 1, calls)
}

func TestIdempotency_ReleasesKeyOnFailure(t *testing.T) {
	store := new(mocks.ResponseStoreMock)
	store.On("Reserve", mock.Anything, purchasesKey).Return(true, nil).Once()
	store.On("Release", mock.Anything, purchasesKey).Return(nil).Once()

	calls := 0
	r := newIdempotencyRouter(store, http.StatusBadRequest, &calls)

	w := postPurchase(r, "key-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, calls)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "StoreResponse", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdempotency_FailsOpenWhenStoreIsDown(t *testing.T) {
	store := new(mocks.ResponseStoreMock)
	store.On("Reserve", mock.Anything, purchasesKey).
		Return(false, errors.New("dial tcp: connection refused")).Once()

	calls := 0
	r := newIdempotencyRouter(store, http.StatusCreated, &calls)

	w := postPurchase(r, "key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "StoreResponse", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdempotency_UnreadableReservationIsUnavailable(t *testing.T) {
	store := new(mocks.ResponseStoreMock)
	store.On("Reserve", mock.Anything, purchasesKey).Return(false, nil).Once()
	store.On("GetResponse", mock.Anything, purchasesKey).
		Return(redis.StoredResponse{}, errors.New("i/o timeout")).Once()

	calls := 0
	r := newIdempotencyRouter(store, http.StatusCreated, &calls)

	w := postPurchase(r, "key-1")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 0, calls)
}

func TestIdempotency_RejectsOversizedKey(t *testing.T) {
	store := new(mocks.ResponseStoreMock)
	calls := 0
	r := newIdempotencyRouter(store, http.StatusCreated, &calls)

	w := postPurchase(r, strings.Repeat("k", maxIdempotencyKeyLength+1))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, calls)
}

// reservingStore mirrors the Redis storage semantics in memory.
type reservingStore struct {
	mu        sync.Mutex
	pending   map[string]bool
	responses map[string]redis.StoredResponse
}

func newReservingStore() *reservingStore {
	return &reservingStore{
		pending:   make(map[string]bool),
		responses: make(map[string]redis.StoredResponse),
	}
}

func (s *reservingStore) Reserve(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.responses[key]; ok || s.pending[key] {
		return false, nil
	}
	s.pending[key] = true
	return true, nil
}

func (s *reservingStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, key)
	return nil
}

func (s *reservingStore) GetResponse(_ context.Context, key string) (redis.StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp, ok := s.responses[key]; ok {
		return resp, nil
	}
	if s.pending[key] {
		return redis.StoredResponse{}, redis.ErrResponsePending
	}
	return redis.StoredResponse{}, redis.ErrResponseNotFound
}

func (s *reservingStore) StoreResponse(_ context.Context, key string, resp redis.StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, key)
	s.responses[key] = resp
	return nil
}
