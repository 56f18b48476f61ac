package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.True(t, IsValidEmail("a.b+tag@sub.domain.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("alice@"))
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-01-10")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())

	_, ok = IsValidDate("10-01-2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   \t"))
	assert.False(t, IsEmpty("x"))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "Valid email is required"},
		{Field: "reason", Message: "Reason is required"},
	}
	assert.Contains(t, errs.Error(), "email: Valid email is required")
	m := errs.ToMap()
	assert.Equal(t, "Reason is required", m["reason"])
}
