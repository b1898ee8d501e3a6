package mbqcirq

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJobLifecycle(t *testing.T) {
	cp, err := Compile(teleportPattern(0, 0), DefaultOptions())
	require.NoError(t, err)

	exec := NewLocalExecutor(42, quietLogger())
	job := exec.Submit(cp, 128)
	require.NotEmpty(t, job.ID())

	require.Eventually(t, job.IsDone, 5*time.Second, time.Millisecond)
	require.NoError(t, job.Err())

	decoded, ok := job.Result(false)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"0": 128}, decoded)

	raw, ok := job.Result(true)
	require.True(t, ok)
	total := 0
	for key, c := range raw {
		assert.Len(t, key, cp.Program.NumRegisters)
		total += c
	}
	assert.Equal(t, 128, total)
}

func TestJobIDsDistinct(t *testing.T) {
	cp, err := Compile(teleportPattern(0, 0), DefaultOptions())
	require.NoError(t, err)

	exec := NewLocalExecutor(1, quietLogger())
	a := exec.Submit(cp, 1)
	b := exec.Submit(cp, 1)
	assert.NotEqual(t, a.ID(), b.ID())

	require.Eventually(t, a.IsDone, 5*time.Second, time.Millisecond)
	require.Eventually(t, b.IsDone, 5*time.Second, time.Millisecond)
}

func TestJobSeedsIndependent(t *testing.T) {
	// Two jobs from one executor draw different seeds, two executors with the
	// same base seed replay each other.
	cp, err := Compile(teleportPattern(0.5, 0), DefaultOptions())
	require.NoError(t, err)

	run := func(exec *LocalExecutor) map[string]int {
		job := exec.Submit(cp, 256)
		require.Eventually(t, job.IsDone, 5*time.Second, time.Millisecond)
		require.NoError(t, job.Err())
		raw, ok := job.Result(true)
		require.True(t, ok)
		return raw
	}

	first := run(NewLocalExecutor(7, quietLogger()))
	replay := run(NewLocalExecutor(7, quietLogger()))
	assert.Equal(t, first, replay)
}

func TestJobCancel(t *testing.T) {
	cp, err := Compile(teleportPattern(0.5, 0), DefaultOptions())
	require.NoError(t, err)

	exec := NewLocalExecutor(3, quietLogger())
	job := exec.Submit(cp, 1<<22)
	job.Cancel()

	require.Eventually(t, job.IsDone, 30*time.Second, time.Millisecond)
	if err := job.Err(); err != nil {
		assert.ErrorIs(t, err, context.Canceled)
		_, ok := job.Result(true)
		assert.True(t, ok)
	}
}

func TestJobResultWhileRunning(t *testing.T) {
	cp, err := Compile(teleportPattern(0.5, 0), DefaultOptions())
	require.NoError(t, err)

	exec := NewLocalExecutor(5, quietLogger())
	job := exec.Submit(cp, 1<<22)
	defer job.Cancel()

	if !job.IsDone() {
		res, ok := job.Result(false)
		assert.False(t, ok)
		assert.Nil(t, res)
	}
}
