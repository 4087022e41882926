package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrBatchUnavailable, "gone"))

	appErr := FromError(wrapped)

	assert.Equal(t, ErrBatchUnavailable.Code, appErr.Code)
	assert.Equal(t, "gone", appErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
}

func TestFromErrorFallsBackToInternal(t *testing.T) {
	appErr := FromError(errors.New("boom"))

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.EqualError(t, appErr, "internal server error: boom")
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(errors.New("dial tcp"), ErrStore.Code, ErrStore.Status, "failed to insert candidate")

	assert.True(t, errors.Is(err, ErrStore))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestWithFieldsDoesNotMutateTemplate(t *testing.T) {
	err := WithFields(ErrValidation, map[string]string{"email": "must be a valid email address"})

	assert.Len(t, err.Fields, 1)
	assert.Nil(t, ErrValidation.Fields)
}
