package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	auditerrors "github.com/locaudit/locaudit/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("net::ERR_CONNECTION_REFUSED")
	err := auditerrors.Wrap(cause, auditerrors.CodeNavigation, "navigate")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "[NAVIGATION] navigate")
	assert.Contains(t, err.Error(), "ERR_CONNECTION_REFUSED")
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, auditerrors.Wrap(nil, auditerrors.CodeIndex, "scan"))
}

func TestIsCode_ThroughFmtWrapping(t *testing.T) {
	base := auditerrors.New(auditerrors.CodeSnapshot, "evaluate snapshot")
	wrapped := fmt.Errorf("locale de: %w", base)

	assert.True(t, auditerrors.IsCode(wrapped, auditerrors.CodeSnapshot))
	assert.False(t, auditerrors.IsCode(wrapped, auditerrors.CodeNavigation))
	assert.Equal(t, auditerrors.CodeSnapshot, auditerrors.CodeOf(wrapped))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, auditerrors.CodeInternal, auditerrors.CodeOf(stderrors.New("boom")))
}

func TestWithContext(t *testing.T) {
	err := auditerrors.New(auditerrors.CodeNavigation, "timeout").
		WithContext(auditerrors.CtxLocale, "de").
		WithContext(auditerrors.CtxURL, "http://localhost:3000")

	assert.Equal(t, "de", err.Context[auditerrors.CtxLocale])
	assert.Contains(t, err.Error(), "localhost:3000")
}
