package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=40"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin moderator"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     "user",
	})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "not-an-email",
		Username: "ab",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "username")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be at least 3 characters long", vErr.Errors["username"])
}

func TestValidateOneof(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     "superuser",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors["role"], "Must be one of")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"name": "This field is required"}}
	assert.Contains(t, err.Error(), "Validation failed")
	assert.Contains(t, err.Error(), "name")
}
