package usecase

import (
	"errors"
	"fmt"
	"strings"

	"fleet-admin/internal/data/repository"
	"fleet-admin/pkg/utils"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries per-field messages and matches ErrValidation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// validate runs struct tag validation and returns a *ValidationError when
// any field fails
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func notFound(what string, id fmt.Stringer) error {
	return fmt.Errorf("%s %s: %w", what, id.String(), ErrNotFound)
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidState)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// mapRepoError translates repository sentinels into service sentinels
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrVersionConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
