package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nutrimate/v1/pkg/errors"
)

type sampleRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Comment string `json:"comment" validate:"omitempty,no_xss"`
	Message string `json:"message" validate:"required,max=20,safe_text"`
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	t.Run("Valid_ShouldPass", func(t *testing.T) {
		err := v.Struct(sampleRequest{Email: "a@b.co", Message: "can I eat apple\n"})
		assert.NoError(t, err)
	})

	t.Run("Invalid_ShouldListFields", func(t *testing.T) {
		err := v.Struct(sampleRequest{Email: "nope", Comment: "<script>alert(1)</script>", Message: "bell\a"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		fields, ok := appErr.Metadata["validation_errors"].(apperrors.ValidationErrors)
		require.True(t, ok)

		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.Field)
		}
		assert.ElementsMatch(t, []string{"email", "comment", "message"}, names)
	})

	t.Run("Required_ShouldUseJSONName", func(t *testing.T) {
		err := v.Struct(sampleRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email is required")
	})
}
