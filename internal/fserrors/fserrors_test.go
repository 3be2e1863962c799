package fserrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassErrorMessageIsExactlyTheFormattedText(t *testing.T) {
	err := NotFound("%s not found.", "sub")
	assert.Equal(t, "sub not found.", err.Error())
}

func TestClassErrorUnwrapsToItsSentinel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"usage", Usage("bad args"), ErrUsage},
		{"name", Name("bad name"), ErrName},
		{"not found", NotFound("gone"), ErrNotFound},
		{"type mismatch", TypeMismatch("wrong type"), ErrTypeMismatch},
		{"exists", Exists("dup"), ErrExists},
		{"state", State("bad state"), ErrState},
		{"space", Space("full"), ErrSpace},
		{"range", Range("oob"), ErrRange},
		{"fatal", Fatal("boom"), ErrFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.want))
		})
	}
}

func TestDistinctSentinelsAreNotConfused(t *testing.T) {
	assert.False(t, errors.Is(NotFound("x"), ErrExists))
}
