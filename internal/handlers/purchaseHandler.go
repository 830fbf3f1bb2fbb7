package handlers

import (
	"context"
	"customer-purchases/internal/domain/dto"
	"customer-purchases/internal/domain/models"
	"customer-purchases/internal/mapper"
	"customer-purchases/internal/repository"
	"customer-purchases/internal/services"
	"errors"
	"github.com/gin-gonic/gin"
	"log/slog"
	"net/http"
	"strings"
)

type PurchaseService interface {
	SubmitPurchase(ctx context.Context, req dto.PurchaseRequest) (models.Purchase, error)
}

type PurchaseHandler struct {
	log             *slog.Logger
	purchaseService PurchaseService
}

func NewPurchaseHandler(log *slog.Logger, purchaseService PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		log:             log,
		purchaseService: purchaseService,
	}
}

// SubmitPurchase
// @Summary Record a purchase
// @Description Stores a purchase. The customer is registered automatically on their first purchase.
// @Tags purchases
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Replays the first successful response for the same key"
// @Param   purchase body dto.PurchaseRequest true "Purchase"
// @Success 201 {object} dto.PurchaseResponse "Stored purchase"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Conflicting write or idempotency key in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Failure 503 {object} dto.ErrorResponse "Customer store unavailable"
// @Router /api/purchases [post]
func (h *PurchaseHandler) SubmitPurchase(c *gin.Context) {
	var input dto.PurchaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := normalizePurchaseRequest(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.purchaseService.SubmitPurchase(c.Request.Context(), input)
	if err != nil {
		status, message := purchaseErrorStatus(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("failed to submit purchase",
				slog.String("customer_id", input.CustomerID),
				slog.String("error", err.Error()),
			)
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusCreated, dto.NewPurchaseResponse(purchase))
}

func purchaseErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrTranslationFailure):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrLookupFailure):
		return http.StatusServiceUnavailable, "Customer store unavailable"
	case errors.Is(err, repository.ErrCustomerAlreadyExists),
		errors.Is(err, repository.ErrPurchaseAlreadyExists):
		return http.StatusConflict, "Conflicting write, retry the request"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// normalizePurchaseRequest trims the identifying fields before the customer is
// looked up, so registration and the stored purchase see the same id.
func normalizePurchaseRequest(req *dto.PurchaseRequest) error {
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.Item = strings.TrimSpace(req.Item)
	if req.CustomerID == "" || req.Item == "" {
		return mapper.ErrEmptyField
	}
	return nil
}
