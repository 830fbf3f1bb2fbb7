package dto

import (
	"time"
)

// swagger:model
type CustomerResponse struct {
	ID        string    `json:"id" example:"C1"`
	CreatedAt time.Time `json:"created_at"`
}
