package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type commentInput struct {
	Content string `validate:"required"`
	PostID  string `validate:"required,max=36"`
	Type    string `validate:"max=5"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()

	err := v.Struct(commentInput{PostID: "0123456789012345678901234567890123456789", Type: "celebrate"})
	msg := FormatValidationError(err)

	assert.Contains(t, msg, "content is required")
	assert.Contains(t, msg, "post_id must be at most 36 characters")
	assert.Contains(t, msg, "type must be at most 5 characters")
}

func TestFormatValidationErrorPassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "unexpected EOF", FormatValidationError(errors.New("unexpected EOF")))
}
