package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	EnsureAdmin(ctx context.Context, admin utils.AdminConfig) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Login only admits active admin accounts to the dashboard
func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || user.PasswordHash == nil || !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	}

	if user.Role != entity.RoleAdmin {
		s.log.Warn("Non-admin login attempt", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("admin access required: %w", ErrUnauthorized)
	}
	if user.IsBlocked {
		return nil, fmt.Errorf("account is blocked: %w", ErrUnauthorized)
	}

	session, err := s.createSession(ctx, user.ID, userAgent, ip)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("Failed to record last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("Admin logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", mapRepoError(err))
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, notFound("user", userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

const minAdminPasswordLength = 8

// EnsureAdmin creates the configured admin account if its email is free.
// An existing account is never modified.
func (s *authService) EnsureAdmin(ctx context.Context, admin utils.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" {
		return nil
	}
	if len(admin.Password) < minAdminPasswordLength {
		return newValidationError("password", fmt.Sprintf("Must be at least %d characters", minAdminPasswordLength))
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		if existing.Role != entity.RoleAdmin {
			s.log.Warn("Seed admin email belongs to a non-admin account",
				zap.String("user_id", existing.ID.String()),
				zap.String("role", string(existing.Role)))
		}
		return nil
	}

	hash, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	fullName := strings.TrimSpace(admin.FullName)
	if fullName == "" {
		fullName = "Fleet Admin"
	}
	user := &entity.User{
		Base:         entity.NewBase(time.Now()),
		FullName:     fullName,
		Email:        email,
		PasswordHash: &hash,
		Role:         entity.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Seed admin created", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, userAgent, ip string) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:     userID,
		Token:      uuid.NewString(),
		UserAgent:  utils.StringPtr(userAgent),
		IPAddress:  utils.StringPtr(ip),
		ExpiresAt:  now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}
