package errors_test

import (
	"errors"
	"testing"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := apperr.NotFoundf("table %d not found", 7).WithMeta("table_id", 7)

	wrapped := apperr.Wrap(base, "loading table")

	assert.Equal(t, apperr.CodeNotFound, wrapped.Code)
	assert.True(t, apperr.IsNotFound(wrapped))
	assert.Equal(t, 7, apperr.GetMeta(wrapped)["table_id"])
	assert.Equal(t, "loading table: table 7 not found", wrapped.Error())

	// meta is copied, not shared
	wrapped.WithMeta("extra", true)
	_, shared := base.Meta["extra"]
	assert.False(t, shared)
}

func TestWrap_PlainError(t *testing.T) {
	cause := errors.New("disk on fire")

	wrapped := apperr.Wrap(cause, "reading source")

	assert.Equal(t, apperr.CodeUnknown, apperr.GetCode(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, apperr.Wrap(nil, "nothing"))
}

func TestWrapWithCode(t *testing.T) {
	sentinel := errors.New("no matching threshold")

	err := apperr.WrapWithCode(sentinel, apperr.CodeValidation, "table 3")

	assert.True(t, apperr.IsValidation(err))
	assert.False(t, apperr.IsNotFound(err))
	assert.ErrorIs(t, err, sentinel)
	assert.Nil(t, apperr.WrapWithCode(nil, apperr.CodeInternal, "x"))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, apperr.CodeUnknown, apperr.GetCode(errors.New("plain")))
	assert.Nil(t, apperr.GetMeta(errors.New("plain")))
	assert.False(t, apperr.IsInvalidArgument(nil))
}
