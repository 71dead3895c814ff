package entity

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleDriver   UserRole = "driver"
	RoleVendor   UserRole = "vendor"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	FullName      string     `db:"full_name"`
	Email         string     `db:"email"`
	Phone         *string    `db:"phone"`
	PasswordHash  *string    `db:"password"`
	Role          UserRole   `db:"role"`
	IsBlocked     bool       `db:"is_blocked"`
	BlockedReason *string    `db:"blocked_reason"`
	LastLoginAt   *time.Time `db:"last_login_at"`
}

// UserManagementRecord is the cross-role row shown on the user management
// screen. TotalBookings is filled for customers and drivers only.
type UserManagementRecord struct {
	User
	TotalBookings int `db:"total_bookings"`
}
