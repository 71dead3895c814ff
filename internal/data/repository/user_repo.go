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

type UserFilter struct {
	Role    *entity.UserRole
	Blocked *bool
	Search  string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	ListManagement(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.UserManagementRecord, error)
	CountManagement(ctx context.Context, filter UserFilter) (int64, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, reason *string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, full_name, email, phone, password, role, is_blocked, blocked_reason,
	last_login_at, created_at, updated_at, deleted_at`

func scanUser(row rowScanner, extra ...any) (*entity.User, error) {
	var u entity.User
	dest := []any{
		&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.IsBlocked, &u.BlockedReason,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, full_name, email, phone, password, role, is_blocked,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.IsBlocked,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := ur.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to update last login", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("update last login %s: %w", id.String(), err)
	}
	return nil
}

func (ur *userRepository) where(f UserFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addRaw("u.deleted_at IS NULL")
	if f.Role != nil {
		w.add("u.role = ?", *f.Role)
	}
	if f.Blocked != nil {
		w.add("u.is_blocked = ?", *f.Blocked)
	}
	if f.Search != "" {
		w.add("(u.full_name ILIKE ? OR u.email ILIKE ? OR u.phone ILIKE ?)", likePattern(f.Search))
	}
	return w
}

// ListManagement returns users with their booking counts. Customers are
// matched through customers.user_id and drivers through drivers.user_id.
func (ur *userRepository) ListManagement(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.UserManagementRecord, error) {
	w := ur.where(filter)
	query := `
		SELECT u.id, u.full_name, u.email, u.phone, u.password, u.role, u.is_blocked, u.blocked_reason,
		       u.last_login_at, u.created_at, u.updated_at, u.deleted_at,
		       CASE u.role
		           WHEN 'customer' THEN (SELECT COUNT(*) FROM bookings b JOIN customers c ON c.id = b.customer_id WHERE c.user_id = u.id)
		           WHEN 'driver' THEN (SELECT COUNT(*) FROM bookings b JOIN drivers d ON d.id = b.driver_id WHERE d.user_id = u.id)
		           ELSE 0
		       END AS total_bookings
		FROM users u` + w.sql() + `
		ORDER BY u.created_at DESC` + w.page(limit, offset)

	rows, err := ur.db.Query(ctx, query, w.args...)
	if err != nil {
		ur.log.Error("Failed to list users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var records []*entity.UserManagementRecord
	for rows.Next() {
		var total int
		user, err := scanUser(rows, &total)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		records = append(records, &entity.UserManagementRecord{User: *user, TotalBookings: total})
	}

	return records, rows.Err()
}

func (ur *userRepository) CountManagement(ctx context.Context, filter UserFilter) (int64, error) {
	w := ur.where(filter)

	var count int64
	if err := ur.db.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+w.sql(), w.args...).Scan(&count); err != nil {
		ur.log.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (ur *userRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, reason *string) error {
	query := `
		UPDATE users
		SET is_blocked = $2, blocked_reason = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query, id, blocked, reason)
	if err != nil {
		ur.log.Error("Failed to set user block flag",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.Bool("blocked", blocked),
		)
		return fmt.Errorf("set blocked for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (ur *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := ur.db.Exec(ctx, query, id, role)
	if err != nil {
		ur.log.Error("Failed to update user role",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("role", string(role)),
		)
		return fmt.Errorf("update role for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id.String(), ErrNotFound)
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}
