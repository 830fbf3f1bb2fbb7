package services

import (
	"context"
	"customer-purchases/internal/domain/dto"
	"customer-purchases/internal/domain/models"
	"customer-purchases/internal/repository"
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrLookupFailure      = errors.New("customer lookup failed")
	ErrTranslationFailure = errors.New("purchase request rejected")
	ErrPersistenceFailure = errors.New("persistence failed")
)

type CustomerRepository interface {
	FindCustomerByID(ctx context.Context, customerID string) (models.Customer, error)
	SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
}

type PurchaseRepository interface {
	SavePurchase(ctx context.Context, purchase models.Purchase) (models.Purchase, error)
}

type Translator interface {
	ToRecord(req dto.PurchaseRequest) (models.Purchase, error)
}

// PurchaseService ingests purchases and registers customers on their first purchase.
// It holds no state between calls.
type PurchaseService struct {
	log                *slog.Logger
	customerRepository CustomerRepository
	purchaseRepository PurchaseRepository
	translator         Translator
}

func NewPurchaseService(log *slog.Logger, customerRepository CustomerRepository,
	purchaseRepository PurchaseRepository, translator Translator) *PurchaseService {
	return &PurchaseService{
		log:                log,
		customerRepository: customerRepository,
		purchaseRepository: purchaseRepository,
		translator:         translator,
	}
}

// SubmitPurchase makes sure the customer exists, then stores the translated purchase and
// returns what the purchase repository returned. The two writes are not atomic: a customer
// created here stays even if saving the purchase fails.
func (s *PurchaseService) SubmitPurchase(ctx context.Context, req dto.PurchaseRequest) (models.Purchase, error) {
	const op = "services.PurchaseService.SubmitPurchase"

	customerID := req.CustomerID

	log := s.log.With(
		slog.String("op", op),
		slog.String("customer_id", customerID),
	)

	log.Info("looking up customer")

	_, err := s.customerRepository.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, repository.ErrCustomerNotFound) {
			log.Error("failed to look up customer", slog.String("error", err.Error()))
			return models.Purchase{}, fmt.Errorf("%s: %w: %w", op, ErrLookupFailure, err)
		}

		log.Info("customer not found, registration")

		if _, err := s.customerRepository.SaveCustomer(ctx, models.Customer{ID: customerID}); err != nil {
			log.Error("failed to save customer", slog.String("error", err.Error()))
			return models.Purchase{}, fmt.Errorf("%s: %w: %w", op, ErrPersistenceFailure, err)
		}

		log.Info("customer saved")
	}

	record, err := s.translator.ToRecord(req)
	if err != nil {
		log.Info("purchase request rejected", slog.String("error", err.Error()))
		return models.Purchase{}, fmt.Errorf("%s: %w: %w", op, ErrTranslationFailure, err)
	}

	log.Info("saving purchase", slog.String("purchase_id", record.ID.String()))

	saved, err := s.purchaseRepository.SavePurchase(ctx, record)
	if err != nil {
		log.Error("failed to save purchase", slog.String("error", err.Error()))
		return models.Purchase{}, fmt.Errorf("%s: %w: %w", op, ErrPersistenceFailure, err)
	}

	log.Info("purchase saved")

	return saved, nil
}
