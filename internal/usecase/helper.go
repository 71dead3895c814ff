package usecase

import (
	"context"
	"time"

	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
)

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, newValidationError(field, "Must be a valid UUID")
	}
	return id, nil
}

func parseOptionalID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(*raw)
	if err != nil {
		return nil, newValidationError(field, "Must be a date in 2006-01-02 format")
	}
	return t, nil
}

// actorFrom returns the authenticated admin, if any, for audit columns
func actorFrom(ctx context.Context) *uuid.UUID {
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &id
}
