package handlers

import (
	"context"
	"customer-purchases/internal/domain/dto"
	"customer-purchases/internal/domain/models"
	"customer-purchases/internal/repository"
	"customer-purchases/internal/services"
	"errors"
	"github.com/gin-gonic/gin"
	"log/slog"
	"net/http"
	"strconv"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, customerID string) (models.Customer, error)
	GetCustomerPurchases(ctx context.Context, customerID string, limit, offset int) ([]models.Purchase, error)
}

type CustomerHandler struct {
	log             *slog.Logger
	customerService CustomerService
}

func NewCustomerHandler(log *slog.Logger, customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		log:             log,
		customerService: customerService,
	}
}

// GetCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID := c.Param("id")

	customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CustomerResponse{ID: customer.ID, CreatedAt: customer.CreatedAt})
}

// GetCustomerPurchases godoc
// @Summary List purchases of a customer
// @Description Newest purchases first.
// @Tags customers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Customer ID"
// @Param limit query int false "Page size, 1..100" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.PurchaseListResponse "Purchases"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{id}/purchases [get]
func (h *CustomerHandler) GetCustomerPurchases(c *gin.Context) {
	customerID := c.Param("id")

	limit, err := queryInt(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
		return
	}
	limit, offset = services.NormalizePage(limit, offset)

	purchases, err := h.customerService.GetCustomerPurchases(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.PurchaseListResponse{
		CustomerID: customerID,
		Purchases:  make([]dto.PurchaseResponse, 0, len(purchases)),
		Limit:      limit,
		Offset:     offset,
	}
	for _, p := range purchases {
		resp.Purchases = append(resp.Purchases, dto.NewPurchaseResponse(p))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CustomerHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	h.log.Error("failed to read customer", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
