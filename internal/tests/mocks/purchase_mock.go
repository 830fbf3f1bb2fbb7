package mocks

import (
	"context"
	"customer-purchases/internal/domain/dto"
	"customer-purchases/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type PurchaseRepositoryMock struct {
	mock.Mock
}

func (m *PurchaseRepositoryMock) SavePurchase(ctx context.Context, purchase models.Purchase) (models.Purchase, error) {
	args := m.Called(ctx, purchase)
	return args.Get(0).(models.Purchase), args.Error(1)
}

type TranslatorMock struct {
	mock.Mock
}

func (m *TranslatorMock) ToRecord(req dto.PurchaseRequest) (models.Purchase, error) {
	args := m.Called(req)
	return args.Get(0).(models.Purchase), args.Error(1)
}
