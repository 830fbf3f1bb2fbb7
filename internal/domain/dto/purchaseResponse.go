package dto

import (
	"customer-purchases/internal/domain/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

// swagger:model
type PurchaseResponse struct {
	ID          uuid.UUID `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	CustomerID  string    `json:"customer_id" example:"C1"`
	Item        string    `json:"item" example:"widget"`
	Amount      string    `json:"amount" example:"5.99"`
	Currency    string    `json:"currency" example:"RUB"`
	PurchasedAt time.Time `json:"purchased_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// swagger:model
type PurchaseListResponse struct {
	CustomerID string             `json:"customer_id" example:"C1"`
	Purchases  []PurchaseResponse `json:"purchases"`
	Limit      int                `json:"limit" example:"20"`
	Offset     int                `json:"offset" example:"0"`
}

func NewPurchaseResponse(p models.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Item:        p.Item,
		Amount:      decimal.New(p.Amount, -2).StringFixed(2),
		Currency:    p.Currency,
		PurchasedAt: p.PurchasedAt,
		CreatedAt:   p.CreatedAt,
	}
}
