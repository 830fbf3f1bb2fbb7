// Package mapper turns inbound purchase requests into purchase records.
package mapper

import (
	"customer-purchases/internal/domain/dto"
	"customer-purchases/internal/domain/models"
	"customer-purchases/internal/lib/clock"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultCurrency     = "RUB"
	MaxCustomerIDLength = 64
	MaxItemLength       = 128

	minorUnitDigits = 2
)

var (
	ErrInvalidRequest   = errors.New("invalid purchase request")
	ErrEmptyField       = fmt.Errorf("%w: customer_id and item must be filled", ErrInvalidRequest)
	ErrFieldTooLong     = fmt.Errorf("%w: field too long", ErrInvalidRequest)
	ErrPaddedCustomerID = fmt.Errorf("%w: customer_id has leading or trailing whitespace", ErrInvalidRequest)
	ErrInvalidAmount    = fmt.Errorf("%w: invalid amount", ErrInvalidRequest)
	ErrInvalidCurrency  = fmt.Errorf("%w: invalid currency", ErrInvalidRequest)
	ErrInvalidTimestamp = fmt.Errorf("%w: invalid purchased_at", ErrInvalidRequest)
)

type PurchaseMapper struct {
	clock clock.Clock
	newID func() uuid.UUID
}

func NewPurchaseMapper(clk clock.Clock) *PurchaseMapper {
	return &PurchaseMapper{
		clock: clk,
		newID: uuid.New,
	}
}

func (m *PurchaseMapper) ToRecord(req dto.PurchaseRequest) (models.Purchase, error) {
	const op = "mapper.PurchaseMapper.ToRecord"

	// the customer was already looked up by this exact id, so it is kept as is
	customerID := req.CustomerID
	item := strings.TrimSpace(req.Item)
	if customerID == "" || item == "" {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, ErrEmptyField)
	}
	if strings.TrimSpace(customerID) != customerID {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, ErrPaddedCustomerID)
	}
	if utf8.RuneCountInString(customerID) > MaxCustomerIDLength {
		return models.Purchase{}, fmt.Errorf("%s: %w: customer_id exceeds %d characters", op, ErrFieldTooLong, MaxCustomerIDLength)
	}
	if utf8.RuneCountInString(item) > MaxItemLength {
		return models.Purchase{}, fmt.Errorf("%s: %w: item exceeds %d characters", op, ErrFieldTooLong, MaxItemLength)
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	currency, err := parseCurrency(req.Currency)
	if err != nil {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	purchasedAt := m.clock.Now()
	if ts := strings.TrimSpace(req.PurchasedAt); ts != "" {
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return models.Purchase{}, fmt.Errorf("%s: %w: %s", op, ErrInvalidTimestamp, err.Error())
		}
		purchasedAt = parsed.UTC()
	}

	return models.Purchase{
		ID:          m.newID(),
		CustomerID:  customerID,
		Item:        item,
		Amount:      amount,
		Currency:    currency,
		PurchasedAt: purchasedAt,
	}, nil
}

// parseAmount converts a decimal string into minor units.
func parseAmount(raw string) (int64, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	if !value.IsPositive() {
		return 0, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}

	minor := value.Shift(minorUnitDigits)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: at most %d fractional digits allowed", ErrInvalidAmount, minorUnitDigits)
	}
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}

	return minor.IntPart(), nil
}

func parseCurrency(raw string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency == "" {
		return DefaultCurrency, nil
	}
	if len(currency) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
		}
	}

	return currency, nil
}
