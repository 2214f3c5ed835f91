package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSafelyRecoversPanics(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	code := runSafely(nil, func([]string) int { panic("boom") }, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "panic recovered: boom")
}

func TestRunSafelyReturnsRunnerCode(t *testing.T) {
	t.Parallel()

	code := runSafely([]string{"a"}, func(args []string) int { return len(args) + 1 }, &bytes.Buffer{})

	assert.Equal(t, 2, code)
}

func TestRunWithArgs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, runWithArgs([]string{"version"}))
	assert.Equal(t, 1, runWithArgs([]string{"no-such-command"}))
}
