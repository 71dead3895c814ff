package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	repository.UserRepository
	items map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{items: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		r.items[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.items[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	now := time.Now()
	r.items[id].LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) SetBlocked(_ context.Context, id uuid.UUID, blocked bool, reason *string) error {
	u, ok := r.items[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	u.IsBlocked, u.BlockedReason = blocked, reason
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role entity.UserRole) error {
	r.items[id].Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	now := time.Now()
	r.items[id].DeletedAt = &now
	return nil
}

type fakeSessionRepo struct {
	repository.SessionRepository
	sessions map[string]*entity.Session
	revoked  []uuid.UUID
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	if r.sessions == nil {
		r.sessions = map[string]*entity.Session{}
	}
	r.sessions[s.Token] = s
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.revoked = append(r.revoked, userID)
	return nil
}

func account(role entity.UserRole) *entity.User {
	return &entity.User{
		Base:     entity.NewBase(time.Now()),
		FullName: "Priya",
		Email:    uuid.NewString()[:8] + "@fleet.test",
		Role:     role,
	}
}

func TestBlockUser(t *testing.T) {
	admin := account(entity.RoleAdmin)
	customer := account(entity.RoleCustomer)
	users := newFakeUserRepo(admin, customer)
	sessions := &fakeSessionRepo{}
	svc := NewUserService(users, sessions, zap.NewNop())
	ctx := utils.SetUserContext(context.Background(), admin.ID)

	t.Run("admin cannot block themselves", func(t *testing.T) {
		_, err := svc.BlockUser(ctx, admin.ID.String(), &request.BlockUserRequest{})
		require.ErrorIs(t, err, ErrInvalidState)
		assert.False(t, users.items[admin.ID].IsBlocked)
	})

	t.Run("blocking revokes sessions", func(t *testing.T) {
		reason := " fraud "
		resp, err := svc.BlockUser(ctx, customer.ID.String(), &request.BlockUserRequest{Reason: &reason})
		require.NoError(t, err)
		assert.True(t, resp.IsBlocked)
		assert.Equal(t, "fraud", *users.items[customer.ID].BlockedReason)
		assert.Equal(t, []uuid.UUID{customer.ID}, sessions.revoked)
	})

	t.Run("already blocked", func(t *testing.T) {
		_, err := svc.BlockUser(ctx, customer.ID.String(), &request.BlockUserRequest{})
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("unblock", func(t *testing.T) {
		resp, err := svc.UnblockUser(ctx, customer.ID.String())
		require.NoError(t, err)
		assert.False(t, resp.IsBlocked)
	})
}

func TestDeleteAndRoleChange(t *testing.T) {
	admin := account(entity.RoleAdmin)
	driver := account(entity.RoleDriver)
	users := newFakeUserRepo(admin, driver)
	svc := NewUserService(users, &fakeSessionRepo{}, zap.NewNop())
	ctx := utils.SetUserContext(context.Background(), admin.ID)

	require.ErrorIs(t, svc.DeleteUser(ctx, admin.ID.String()), ErrInvalidState)

	_, err := svc.ChangeRole(ctx, driver.ID.String(), &request.ChangeRoleRequest{Role: "driver"})
	require.ErrorIs(t, err, ErrInvalidState)

	resp, err := svc.ChangeRole(ctx, driver.ID.String(), &request.ChangeRoleRequest{Role: "vendor"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendor, resp.Role)

	require.NoError(t, svc.DeleteUser(ctx, driver.ID.String()))
	require.ErrorIs(t, svc.DeleteUser(ctx, driver.ID.String()), ErrNotFound)
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	admin := account(entity.RoleAdmin)
	admin.PasswordHash = &hash
	vendor := account(entity.RoleVendor)
	vendor.PasswordHash = &hash

	sessions := &fakeSessionRepo{}
	repo := &repository.Repository{User: newFakeUserRepo(admin, vendor), Session: sessions}
	cfg := testConfig()
	cfg.Session.ExpiryHours = 12
	svc := NewAuthService(repo, cfg, zap.NewNop())

	t.Run("admin gets a session", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &request.LoginRequest{Email: admin.Email, Password: "s3cret-pass"}, "test", "127.0.0.1")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Contains(t, sessions.sessions, resp.Token)
		assert.WithinDuration(t, time.Now().Add(12*time.Hour), resp.ExpiresAt, time.Minute)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{Email: admin.Email, Password: "nope-nope"}, "", "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("non admin", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{Email: vendor.Email, Password: "s3cret-pass"}, "", "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	repo := &repository.Repository{User: users, Session: &fakeSessionRepo{}}
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	t.Run("not configured", func(t *testing.T) {
		require.NoError(t, svc.EnsureAdmin(ctx, utils.AdminConfig{}))
		assert.Empty(t, users.items)
	})

	t.Run("short password", func(t *testing.T) {
		err := svc.EnsureAdmin(ctx, utils.AdminConfig{Email: "ops@fleet.test", Password: "short"})
		require.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, users.items)
	})

	seed := utils.AdminConfig{Email: " Ops@Fleet.test ", Password: "s3cret-pass"}
	require.NoError(t, svc.EnsureAdmin(ctx, seed))
	require.Len(t, users.items, 1)

	resp, err := svc.Login(ctx, &request.LoginRequest{Email: "ops@fleet.test", Password: "s3cret-pass"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)
	assert.Equal(t, "Fleet Admin", resp.User.FullName)

	t.Run("existing account is left alone", func(t *testing.T) {
		require.NoError(t, svc.EnsureAdmin(ctx, utils.AdminConfig{Email: "ops@fleet.test", Password: "another-pass"}))
		assert.Len(t, users.items, 1)

		_, err := svc.Login(ctx, &request.LoginRequest{Email: "ops@fleet.test", Password: "s3cret-pass"}, "", "")
		assert.NoError(t, err)
	})
}
