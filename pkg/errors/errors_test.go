package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{
			name: "message only",
			err:  New(ErrCodeInvalidConfig, "model name is required"),
			want: "[INVALID_CONFIG] model name is required",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeNotFound, "config file not found", fs.ErrNotExist),
			want: "[NOT_FOUND] config file not found: file does not exist",
		},
		{
			name: "with sorted context",
			err: NewWithContext(ErrCodeConflict, "duplicate name", map[string]interface{}{
				"name": "tiny",
				"keys": []string{"Tiny", "tiny"},
			}),
			want: "[CONFLICT] duplicate name (keys=[Tiny tiny], name=tiny)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	err := Wrap(ErrCodeInternal, "failed to write file", fs.ErrPermission)

	assert.True(t, stderrors.Is(err, fs.ErrPermission))
	assert.Equal(t, fs.ErrPermission, stderrors.Unwrap(err))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeTimeout, CodeOf(Wrap(ErrCodeTimeout, "context cancelled", nil)))
	assert.Equal(t, ErrCodeConflict, CodeOf(fmt.Errorf("outer: %w", New(ErrCodeConflict, "dup"))))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("plain")))
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeInvalidConfig, "bad parameters")
	outer := Wrap(ErrCodeInternal, "render failed", inner)

	assert.True(t, IsCode(outer, ErrCodeInternal))
	assert.True(t, IsCode(outer, ErrCodeInvalidConfig))
	assert.False(t, IsCode(outer, ErrCodeNotFound))
	assert.False(t, IsCode(nil, ErrCodeInternal))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeInternal))
}
