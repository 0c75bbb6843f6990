package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodesSurviveWrapping(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("decode: %w", Wrap(cause, CodeBadRequest, "invalid JSON body"))

	assert.True(t, HasCode(err, CodeBadRequest))
	assert.False(t, Is(err, CodeInternal))
	assert.ErrorIs(t, err, cause)

	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "invalid JSON body", de.Message)
	assert.Equal(t, "bad_request: invalid JSON body: unexpected EOF", de.Error())
}

func TestPlainErrorsHaveNoCode(t *testing.T) {
	_, ok := As(errors.New("boom"))
	assert.False(t, ok)
	assert.False(t, HasCode(nil, CodeInternal))
	assert.Equal(t, "unauthorized: service token required", New(CodeUnauthorized, "service token required").Error())
}
