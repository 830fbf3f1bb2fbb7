package models

import (
	"time"
)

// Customer is created on the first purchase that references its ID and is never changed afterwards.
type Customer struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
