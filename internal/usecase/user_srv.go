package usecase

import (
	"context"
	"fmt"
	"strings"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	ListUsers(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserManagementResponse], error)
	BlockUser(ctx context.Context, userID string, req *request.BlockUserRequest) (*response.UserResponse, error)
	UnblockUser(ctx context.Context, userID string) (*response.UserResponse, error)
	ChangeRole(ctx context.Context, userID string, req *request.ChangeRoleRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	log         *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		log:         log.With(zap.String("service", "user")),
	}
}

func (us *userService) ListUsers(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserManagementResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.UserFilter{Blocked: req.Blocked, Search: strings.TrimSpace(req.Search)}
	if req.Role != "" {
		role := entity.UserRole(req.Role)
		filter.Role = &role
	}

	records, err := us.userRepo.ListManagement(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := us.userRepo.CountManagement(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	items := make([]response.UserManagementResponse, 0, len(records))
	for _, r := range records {
		items = append(items, response.UserManagementToResponse(r))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), req.Limit(), total), nil
}

// target loads the user an admin is acting on and refuses self-targeting
// for the destructive operations
func (us *userService) target(ctx context.Context, rawID string, forbidSelf bool) (*entity.User, error) {
	id, err := parseID("user_id", rawID)
	if err != nil {
		return nil, err
	}

	if forbidSelf {
		if actor := actorFrom(ctx); actor != nil && *actor == id {
			return nil, invalidState("you cannot perform this action on your own account")
		}
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, notFound("user", id)
	}

	return user, nil
}

func (us *userService) reload(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, notFound("user", id)
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) BlockUser(ctx context.Context, userID string, req *request.BlockUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := us.target(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, invalidState("user is already blocked")
	}

	var reason *string
	if !isBlank(req.Reason) {
		r := strings.TrimSpace(*req.Reason)
		reason = &r
	}

	if err := us.userRepo.SetBlocked(ctx, user.ID, true, reason); err != nil {
		return nil, mapRepoError(err)
	}

	// a blocked account must not keep working sessions
	if err := us.sessionRepo.RevokeAllUserSessions(ctx, user.ID); err != nil {
		us.log.Warn("Failed to revoke sessions of blocked user", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	us.log.Info("User blocked", zap.String("user_id", user.ID.String()))
	return us.reload(ctx, user.ID)
}

func (us *userService) UnblockUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := us.target(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if !user.IsBlocked {
		return nil, invalidState("user is not blocked")
	}

	if err := us.userRepo.SetBlocked(ctx, user.ID, false, nil); err != nil {
		return nil, mapRepoError(err)
	}

	us.log.Info("User unblocked", zap.String("user_id", user.ID.String()))
	return us.reload(ctx, user.ID)
}

func (us *userService) ChangeRole(ctx context.Context, userID string, req *request.ChangeRoleRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := us.target(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	role := entity.UserRole(req.Role)
	if user.Role == role {
		return nil, invalidState("user already has role %s", role)
	}

	if err := us.userRepo.UpdateRole(ctx, user.ID, role); err != nil {
		return nil, mapRepoError(err)
	}

	us.log.Info("User role changed",
		zap.String("user_id", user.ID.String()),
		zap.String("from", string(user.Role)),
		zap.String("to", string(role)))
	return us.reload(ctx, user.ID)
}

func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	user, err := us.target(ctx, userID, true)
	if err != nil {
		return err
	}

	if err := us.userRepo.Delete(ctx, user.ID); err != nil {
		return mapRepoError(err)
	}

	if err := us.sessionRepo.RevokeAllUserSessions(ctx, user.ID); err != nil {
		us.log.Warn("Failed to revoke sessions of deleted user", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	return nil
}
