package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/batch-intake-api/internal/dto"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
)

func TestValidPhone(t *testing.T) {
	cases := map[string]bool{
		"1234567890":       true,
		"12345":            false,
		"+91 98765 43210":  true,
		"(080) 1234-5678":  true,
		"98765abc43210":    false,
		"98765+43210":      false,
		"":                 false,
		"  9876543210  ":   true,
		"123-456-789":      false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidPhone(in), in)
	}
}

func TestValidatorEmailRule(t *testing.T) {
	v := NewValidator()
	assert.Error(t, v.Var("not-an-email", "email"))
	assert.NoError(t, v.Var("a@b.com", "email"))
}

func TestValidationErrorReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()
	req := validRequest()
	req.Email = "not-an-email"
	req.ContactNumber = "12345"
	req.FullName = "A"
	req.Qualification = "PhD"

	err := validationError(v.Struct(req), "invalid application")

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "must be a valid email address", appErr.Fields["email"])
	assert.Equal(t, "must contain at least 10 digits", appErr.Fields["contact_number"])
	assert.Equal(t, "must be at least 2 characters", appErr.Fields["full_name"])
	assert.Contains(t, appErr.Fields, "qualification")
}

func TestHODEmailOptionalButChecked(t *testing.T) {
	v := NewValidator()

	req := validRequest()
	assert.NoError(t, v.Struct(req))

	empty := ""
	req.HODEmail = &empty
	assert.NoError(t, v.Struct(req))

	bad := "hod-at-college"
	req.HODEmail = &bad
	assert.Error(t, v.Struct(req))

	good := "hod@college.edu"
	req.HODEmail = &good
	assert.NoError(t, v.Struct(req))
}

func validRequest() dto.SubmitApplicationRequest {
	return dto.SubmitApplicationRequest{
		FullName:         "Asha Kumar",
		Email:            "a@b.com",
		ContactNumber:    "1234567890",
		Qualification:    "B.Tech",
		YearOfCompletion: "2025",
		CollegeName:      "City College",
		Batch:            "Batch 36 (Oct 26, 2026 - Nov 7, 2026)",
		Reference:        "LinkedIn",
	}
}
