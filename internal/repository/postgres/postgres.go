package postgres

import (
	"context"
	"customer-purchases/internal/domain/models"
	"customer-purchases/internal/repository"
	"errors"
	"fmt"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, conn string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := pgxpool.New(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewFromPool wraps an already configured pool; the caller keeps ownership of it.
func NewFromPool(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) FindCustomerByID(ctx context.Context, customerID string) (models.Customer, error) {
	const op = "storage.Postgres.FindCustomerByID"

	sql, args, err := squirrel.Select("id", "created_at").
		From("customers").
		Where(squirrel.Eq{"id": customerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	var customer models.Customer
	err = s.db.QueryRow(ctx, sql, args...).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Customer{}, fmt.Errorf("%s: %w", op, repository.ErrCustomerNotFound)
		}

		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	return customer, nil
}

func (s *Storage) SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	const op = "storage.Postgres.SaveCustomer"

	sql, args, err := squirrel.Insert("customers").
		Columns("id").
		Values(customer.ID).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	err = s.db.QueryRow(ctx, sql, args...).Scan(&customer.CreatedAt)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return models.Customer{}, fmt.Errorf("%s: %w", op, repository.ErrCustomerAlreadyExists)
		}

		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	return customer, nil
}

func (s *Storage) SavePurchase(ctx context.Context, purchase models.Purchase) (models.Purchase, error) {
	const op = "storage.Postgres.SavePurchase"

	sql, args, err := squirrel.Insert("purchases").
		Columns("id", "customer_id", "item", "amount", "currency", "purchased_at").
		Values(purchase.ID, purchase.CustomerID, purchase.Item, purchase.Amount, purchase.Currency, purchase.PurchasedAt).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	err = s.db.QueryRow(ctx, sql, args...).Scan(&purchase.CreatedAt)
	if err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return models.Purchase{}, fmt.Errorf("%s: %w", op, repository.ErrPurchaseAlreadyExists)
		case codeForeignKeyViolation:
			return models.Purchase{}, fmt.Errorf("%s: %w", op, repository.ErrCustomerNotFound)
		}

		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	return purchase, nil
}

func (s *Storage) GetCustomerPurchases(ctx context.Context, customerID string, limit, offset int) ([]models.Purchase, error) {
	const op = "storage.Postgres.GetCustomerPurchases"

	sql, args, err := squirrel.Select("id", "customer_id", "item", "amount", "currency", "purchased_at", "created_at").
		From("purchases").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("purchased_at DESC", "created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	purchases := make([]models.Purchase, 0)
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Item, &p.Amount, &p.Currency, &p.PurchasedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return purchases, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Postgres.Ping"

	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	s.db.Close()
	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
