package entity

import "github.com/google/uuid"

type Customer struct {
	BaseNoDelete
	UserID   *uuid.UUID `db:"user_id"`
	FullName string     `db:"full_name"`
	Phone    string     `db:"phone"`
	Email    *string    `db:"email"`
}
