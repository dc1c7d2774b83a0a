package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	sentinel := stderrors.New("asset missing")
	err := WrapError(sentinel, CategoryFileSystem, "unresolved asset path").
		WithSeverity(SeverityWarning).
		WithField("starlight.logo.src").
		WithHint("add the file under src/assets").
		WithContext("root", "/site").
		Build()

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, CategoryFileSystem, err.Category())
	assert.Equal(t, SeverityWarning, err.Severity())
	assert.Equal(t, "starlight.logo.src", err.Field())
	assert.Equal(t, "add the file under src/assets", err.Hint())
	root, ok := err.Context().GetString("root")
	assert.True(t, ok)
	assert.Equal(t, "/site", root)
	assert.Equal(t, "[filesystem] starlight.logo.src: unresolved asset path: asset missing", err.Error())
}

func TestClassifiedError_Defaults(t *testing.T) {
	err := ConfigError("invalid declaration").Build()
	assert.True(t, err.IsFatal())
	assert.Empty(t, err.Field())
	assert.Empty(t, err.Hint())
	assert.Equal(t, "[config] invalid declaration", err.Error())

	assert.False(t, ValidationError("missing title").Build().IsFatal())
}

func TestClassifiedError_WithContextCopies(t *testing.T) {
	err := ValidationError("missing title").WithHint("set title").Build()
	derived := err.WithContext("extra", 1)

	_, ok := err.Context().Get("extra")
	assert.False(t, ok, "original must not change")
	_, ok = derived.Context().Get("extra")
	assert.True(t, ok)
	assert.Equal(t, "set title", derived.Hint())
}

func TestClassifiedError_Is(t *testing.T) {
	a := ValidationError("conflicting title render").Build()
	b := ValidationError("conflicting title render").WithContext("logo", "x.svg").Build()
	c := ConfigError("conflicting title render").Build()

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, c)
}

func TestChainHelpers(t *testing.T) {
	inner := ValidationError("missing title").WithField("starlight.title").Build()
	wrapped := fmt.Errorf("assemble: %w", inner)

	classified, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, classified)
	assert.True(t, HasCategory(wrapped, CategoryValidation))
	assert.Equal(t, CategoryValidation, GetCategory(wrapped))
	assert.Equal(t, "starlight.title", FieldOf(wrapped))

	plain := stderrors.New("plain")
	assert.False(t, HasCategory(plain, CategoryValidation))
	assert.Equal(t, CategoryInternal, GetCategory(plain))
	assert.Empty(t, FieldOf(plain))
}
