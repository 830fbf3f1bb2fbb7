package integration

import (
	"context"
	"customer-purchases/internal/domain/dto"
	"customer-purchases/internal/domain/models"
	"customer-purchases/internal/lib/clock"
	"customer-purchases/internal/mapper"
	"customer-purchases/internal/repository"
	"customer-purchases/internal/repository/postgres"
	"customer-purchases/internal/services"
	"customer-purchases/internal/testutil"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PostgresSuite struct {
	suite.Suite
	ctx     context.Context
	storage *postgres.Storage
	service *services.PurchaseService
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	pool := testutil.NewTestPool(s.T())
	testutil.ApplyMigrations(s.T(), s.ctx, pool)

	s.storage = postgres.NewFromPool(pool)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := mapper.NewPurchaseMapper(clock.NewFixed(time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)))
	s.service = services.NewPurchaseService(log, s.storage, s.storage, m)
}

func (s *PostgresSuite) SetupTest() {
	testutil.TruncateAll(s.T(), s.ctx, s.storage.Pool())
}

func (s *PostgresSuite) TestMigrationsAreReentrant() {
	testutil.ApplyMigrations(s.T(), s.ctx, s.storage.Pool())

	var version int64
	err := s.storage.Pool().QueryRow(s.ctx,
		`SELECT MAX(version_id) FROM goose_db_version WHERE is_applied`).Scan(&version)
	s.Require().NoError(err)
	s.Equal(int64(1), version)
}

func (s *PostgresSuite) TestFindCustomerByID_NotFound() {
	_, err := s.storage.FindCustomerByID(s.ctx, "missing")
	s.ErrorIs(err, repository.ErrCustomerNotFound)
}

func (s *PostgresSuite) TestSaveCustomer_DuplicateIsRejected() {
	saved, err := s.storage.SaveCustomer(s.ctx, models.Customer{ID: "C1"})
	s.Require().NoError(err)
	s.Equal("C1", saved.ID)
	s.False(saved.CreatedAt.IsZero())

	_, err = s.storage.SaveCustomer(s.ctx, models.Customer{ID: "C1"})
	s.ErrorIs(err, repository.ErrCustomerAlreadyExists)
}

func (s *PostgresSuite) TestSavePurchase_RequiresCustomer() {
	_, err := s.storage.SavePurchase(s.ctx, models.Purchase{
		ID:          uuid.New(),
		CustomerID:  "ghost",
		Item:        "widget",
		Amount:      100,
		Currency:    "RUB",
		PurchasedAt: time.Now().UTC(),
	})
	s.ErrorIs(err, repository.ErrCustomerNotFound)
}

func (s *PostgresSuite) TestSubmitPurchase_RegistersCustomerOnce() {
	req := dto.PurchaseRequest{CustomerID: "C1", Item: "widget", Amount: "5.99"}

	first, err := s.service.SubmitPurchase(s.ctx, req)
	s.Require().NoError(err)
	second, err := s.service.SubmitPurchase(s.ctx, req)
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
	s.False(first.CreatedAt.IsZero())

	var customers int
	s.Require().NoError(s.storage.Pool().QueryRow(s.ctx, `SELECT COUNT(*) FROM customers`).Scan(&customers))
	s.Equal(1, customers)

	purchases, err := s.storage.GetCustomerPurchases(s.ctx, "C1", 10, 0)
	s.Require().NoError(err)
	s.Len(purchases, 2)
	s.Equal(int64(599), purchases[0].Amount)
	s.Equal("RUB", purchases[0].Currency)
}

func (s *PostgresSuite) TestGetCustomerPurchases_OrderAndPaging() {
	_, err := s.storage.SaveCustomer(s.ctx, models.Customer{ID: "C1"})
	s.Require().NoError(err)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.storage.SavePurchase(s.ctx, models.Purchase{
			ID:          uuid.New(),
			CustomerID:  "C1",
			Item:        "widget",
			Amount:      int64(100 * (i + 1)),
			Currency:    "RUB",
			PurchasedAt: base.Add(time.Duration(i) * time.Hour),
		})
		s.Require().NoError(err)
	}

	page, err := s.storage.GetCustomerPurchases(s.ctx, "C1", 2, 0)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(int64(300), page[0].Amount)
	s.Equal(int64(200), page[1].Amount)

	page, err = s.storage.GetCustomerPurchases(s.ctx, "C1", 2, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(int64(100), page[0].Amount)
}
