package response

import (
	"time"

	"fleet-admin/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID            string          `json:"id"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone,omitempty"`
	Role          entity.UserRole `json:"role"`
	IsBlocked     bool            `json:"is_blocked"`
	BlockedReason *string         `json:"blocked_reason,omitempty"`
	LastLoginAt   *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// UserManagementResponse adds the booking count shown per row on the user
// management screen
type UserManagementResponse struct {
	UserResponse
	TotalBookings int `json:"total_bookings"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		FullName:      user.FullName,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          user.Role,
		IsBlocked:     user.IsBlocked,
		BlockedReason: user.BlockedReason,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
	}
}

func UserManagementToResponse(r *entity.UserManagementRecord) UserManagementResponse {
	return UserManagementResponse{
		UserResponse:  UserToResponse(&r.User),
		TotalBookings: r.TotalBookings,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{User: UserToResponse(user)}
	if session != nil {
		resp.Token = session.Token
		resp.ExpiresAt = session.ExpiresAt
	}
	return resp
}
