package opserr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/tgops/pkg/svc/opserr"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want opserr.Kind
	}{
		{name: "nil", err: nil, want: opserr.KindNone},
		{name: "unavailable", err: opserr.ErrClusterUnavailable, want: opserr.KindClusterUnavailable},
		{
			name: "wrapped forbidden",
			err:  fmt.Errorf("annotate prod/app1: %w", opserr.ErrClusterForbidden),
			want: opserr.KindClusterForbidden,
		},
		{name: "not found", err: opserr.ErrResourceNotFound, want: opserr.KindResourceNotFound},
		{name: "pending", err: opserr.ErrAlreadyPending, want: opserr.KindAlreadyPending},
		{name: "unauthorized", err: opserr.ErrUnauthorized, want: opserr.KindUnauthorized},
		{name: "invalid", err: opserr.ErrInvalidArgument, want: opserr.KindInvalidArgument},
		{name: "foreign error", err: context.Canceled, want: opserr.KindInternal},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, opserr.KindOf(testCase.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, opserr.Retryable(fmt.Errorf("list pods: %w", opserr.ErrClusterUnavailable)))
	assert.False(t, opserr.Retryable(opserr.ErrClusterForbidden))
	assert.False(t, opserr.Retryable(opserr.ErrResourceNotFound))
	assert.False(t, opserr.Retryable(nil))
}

func TestErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	allErrors := []error{
		opserr.ErrClusterUnavailable,
		opserr.ErrClusterForbidden,
		opserr.ErrResourceNotFound,
		opserr.ErrAlreadyPending,
		opserr.ErrUnauthorized,
		opserr.ErrInvalidArgument,
	}

	for index := range allErrors {
		for innerIndex := index + 1; innerIndex < len(allErrors); innerIndex++ {
			assert.False(
				t,
				errors.Is(allErrors[index], allErrors[innerIndex]),
				"errors at index %d and %d should be distinct",
				index,
				innerIndex,
			)
		}
	}
}
