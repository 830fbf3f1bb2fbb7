package services

import (
	"context"
	"customer-purchases/internal/domain/models"
	"fmt"
	"log/slog"
)

const (
	DefaultPurchasesLimit = 20
	MaxPurchasesLimit     = 100
)

type CustomerReader interface {
	FindCustomerByID(ctx context.Context, customerID string) (models.Customer, error)
	GetCustomerPurchases(ctx context.Context, customerID string, limit, offset int) ([]models.Purchase, error)
}

type CustomerService struct {
	log            *slog.Logger
	customerReader CustomerReader
}

func NewCustomerService(log *slog.Logger, customerReader CustomerReader) *CustomerService {
	return &CustomerService{
		log:            log,
		customerReader: customerReader,
	}
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (models.Customer, error) {
	const op = "services.CustomerService.GetCustomer"

	customer, err := s.customerReader.FindCustomerByID(ctx, customerID)
	if err != nil {
		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	return customer, nil
}

// GetCustomerPurchases returns the newest purchases first. limit is clamped to
// [1, MaxPurchasesLimit], non-positive values fall back to DefaultPurchasesLimit.
func (s *CustomerService) GetCustomerPurchases(ctx context.Context, customerID string, limit, offset int) ([]models.Purchase, error) {
	const op = "services.CustomerService.GetCustomerPurchases"

	limit, offset = NormalizePage(limit, offset)

	log := s.log.With(
		slog.String("op", op),
		slog.String("customer_id", customerID),
		slog.Int("limit", limit),
		slog.Int("offset", offset),
	)

	log.Info("getting customer purchases")

	if _, err := s.customerReader.FindCustomerByID(ctx, customerID); err != nil {
		log.Info("failed to get customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	purchases, err := s.customerReader.GetCustomerPurchases(ctx, customerID, limit, offset)
	if err != nil {
		log.Error("failed to get customer purchases", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("got customer purchases", slog.Int("count", len(purchases)))

	return purchases, nil
}

func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPurchasesLimit
	}
	if limit > MaxPurchasesLimit {
		limit = MaxPurchasesLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
