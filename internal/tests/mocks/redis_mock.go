package mocks

import (
	"context"
	"customer-purchases/internal/repository/redis"
	"github.com/stretchr/testify/mock"
)

type ResponseStoreMock struct {
	mock.Mock
}

func (m *ResponseStoreMock) GetResponse(ctx context.Context, key string) (redis.StoredResponse, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(redis.StoredResponse), args.Error(1)
}

func (m *ResponseStoreMock) StoreResponse(ctx context.Context, key string, resp redis.StoredResponse) error {
	args := m.Called(ctx, key, resp)
	return args.Error(0)
}

func (m *ResponseStoreMock) Reserve(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *ResponseStoreMock) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
