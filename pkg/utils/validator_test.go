package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type reasonForm struct {
	Reason   string  `json:"reason" validate:"required,notblank"`
	Note     *string `json:"note,omitempty" validate:"omitempty,notblank"`
	Internal string  `validate:"omitempty,max=3"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	blank := "   "
	errs := ValidateStruct(reasonForm{Reason: " \t", Note: &blank, Internal: "toolong"})

	assert.Equal(t, "Must not be blank", errs["reason"])
	assert.Equal(t, "Must not be blank", errs["note"])
	assert.Equal(t, "Maximum value is 3", errs["Internal"])
}

func TestValidateStructPasses(t *testing.T) {
	assert.Nil(t, ValidateStruct(reasonForm{Reason: "driver no-show"}))
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"zone": "bad", "amount": "worse"})
	assert.Equal(t, "amount: worse; zone: bad", got)
}

func TestPaginationHelpers(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 245.56, Round2(245.556))
	assert.Equal(t, 210.0, Round2(210))
}
