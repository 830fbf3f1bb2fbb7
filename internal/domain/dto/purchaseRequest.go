package dto

// swagger:model
type PurchaseRequest struct {
	CustomerID  string `json:"customer_id" binding:"required,max=64" example:"C1"`
	Item        string `json:"item" binding:"required,max=128" example:"widget"`
	Amount      string `json:"amount" binding:"required" example:"5.99"`
	Currency    string `json:"currency,omitempty" example:"RUB"`
	PurchasedAt string `json:"purchased_at,omitempty" example:"2025-02-14T10:00:00Z"`
}
