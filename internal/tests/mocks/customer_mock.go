package mocks

import (
	"context"
	"customer-purchases/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type CustomerRepositoryMock struct {
	mock.Mock
}

func (m *CustomerRepositoryMock) FindCustomerByID(ctx context.Context, customerID string) (models.Customer, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(models.Customer), args.Error(1)
}

func (m *CustomerRepositoryMock) SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(models.Customer), args.Error(1)
}

func (m *CustomerRepositoryMock) GetCustomerPurchases(ctx context.Context, customerID string, limit, offset int) ([]models.Purchase, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]models.Purchase), args.Error(1)
}
