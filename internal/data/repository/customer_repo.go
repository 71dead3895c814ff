package repository

import (
	"context"
	"errors"
	"fmt"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error)
	Count(ctx context.Context, search string) (int64, error)
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func (r *customerRepository) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, full_name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query, c.ID, c.UserID, c.FullName, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create customer", zap.Error(err), zap.String("phone", c.Phone))
		return fmt.Errorf("create customer %s: %w", c.Phone, err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `
		SELECT id, user_id, full_name, phone, email, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var c entity.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.UserID, &c.FullName, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID", zap.Error(err), zap.String("customer_id", id.String()))
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return &c, nil
}

func (r *customerRepository) where(search string) *whereBuilder {
	w := &whereBuilder{}
	if search != "" {
		w.add("(full_name ILIKE ? OR phone ILIKE ? OR email ILIKE ?)", likePattern(search))
	}
	return w
}

func (r *customerRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	w := r.where(search)
	query := `SELECT id, user_id, full_name, phone, email, created_at, updated_at FROM customers` +
		w.sql() + ` ORDER BY created_at DESC` + w.page(limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list customers", zap.Error(err))
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.FullName, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, &c)
	}

	return customers, rows.Err()
}

func (r *customerRepository) Count(ctx context.Context, search string) (int64, error) {
	w := r.where(search)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+w.sql(), w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}
