package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireErrorAs fails the test unless err wraps a T, and returns it.
func RequireErrorAs[T error](t *testing.T, err error) T {
	t.Helper()
	require.Error(t, err)

	var target T
	require.Truef(t, errors.As(err, &target), "expected %T in chain, got %v", target, err)
	return target
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), expected)
	}
}
