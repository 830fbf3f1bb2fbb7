package models

import (
	"github.com/google/uuid"
	"time"
)

type Purchase struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CustomerID  string    `json:"customer_id" db:"customer_id"`
	Item        string    `json:"item" db:"item"`
	Amount      int64     `json:"amount" db:"amount"` // minor units, kopecks for RUB
	Currency    string    `json:"currency" db:"currency"`
	PurchasedAt time.Time `json:"purchased_at" db:"purchased_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
