package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewParseError("bad row", fmt.Errorf("record on line 3: wrong number of fields")),
			want: "[PARSE] bad row: record on line 3: wrong number of fields",
		},
		{
			name: "without cause",
			err:  NewEmptyResultError("year filter"),
			want: "[EMPTY_RESULT] year filter produced no rows",
		},
		{
			name: "schema error",
			err:  NewSchemaError("column Total not found", nil),
			want: "[SCHEMA] column Total not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := NewStorageError("write failed", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(fmt.Errorf("wrapped: %w", err), &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("stage failed: %w", NewSchemaError("no such column", nil))

	assert.True(t, IsType(err, ErrTypeSchema))
	assert.False(t, IsType(err, ErrTypeParse))
	assert.False(t, IsType(stderrors.New("plain"), ErrTypeSchema))
}

func TestWithContext(t *testing.T) {
	err := NewParseError("cannot parse value", nil).
		WithContext("column", "Data_Value").
		WithContext("row", 17)

	assert.Equal(t, "Data_Value", err.Context["column"])
	assert.Equal(t, 17, err.Context["row"])
}
