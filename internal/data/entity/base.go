package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// NewBase stamps a fresh id and timestamps
func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func NewBaseNoDelete(now time.Time) BaseNoDelete {
	return BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func NewBaseSimple(now time.Time) BaseSimple {
	return BaseSimple{ID: uuid.New(), CreatedAt: now}
}
