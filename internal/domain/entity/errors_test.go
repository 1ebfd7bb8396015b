package entity_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliolabs/folio/internal/domain/entity"
)

func TestClassifyLoadError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind entity.LoadErrorKind
		key  string
	}{
		{
			name: "invalid",
			err:  fmt.Errorf("parse header: %w", entity.ErrInvalidDocument),
			kind: entity.LoadErrorInvalid,
			key:  "invalid_file_error",
		},
		{
			name: "missing",
			err:  fmt.Errorf("fetch: %w", entity.ErrMissingDocument),
			kind: entity.LoadErrorMissing,
			key:  "missing_file_error",
		},
		{
			name: "transport",
			err:  fmt.Errorf("fetch: %w", entity.ErrUnexpectedTransport),
			kind: entity.LoadErrorTransport,
			key:  "unexpected_response_error",
		},
		{
			name: "generic",
			err:  errors.New("out of memory"),
			kind: entity.LoadErrorGeneric,
			key:  "loading_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := entity.ClassifyLoadError(tt.err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.key, kind.MessageKey())
		})
	}
}
