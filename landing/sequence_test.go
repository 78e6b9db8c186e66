package landing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureResolvesOnce(t *testing.T) {
	f := newFuture()
	calls := 0
	f.Then(func(error) { calls++ })

	assert.True(t, f.resolve(nil))
	assert.False(t, f.resolve(errors.New("late")))
	assert.NoError(t, f.Err())
	assert.Equal(t, 1, calls)

	// Registered after resolution: runs immediately.
	f.Then(func(error) { calls++ })
	assert.Equal(t, 2, calls)
}

func TestSequenceWaitsOnFutures(t *testing.T) {
	var log []string
	gate := newFuture()
	seq := NewSequence(
		Do(func() { log = append(log, "a") }),
		Await(func() *Future { log = append(log, "wait"); return gate }),
		Do(func() { log = append(log, "b") }),
	)

	seq.Update()
	assert.Equal(t, []string{"a", "wait"}, log)
	assert.False(t, seq.Done())

	seq.Update()
	assert.Equal(t, []string{"a", "wait"}, log, "must not pass an unresolved future")

	gate.resolve(nil)
	seq.Update()
	assert.Equal(t, []string{"a", "wait", "b"}, log)
	require.True(t, seq.Done())
	assert.NoError(t, seq.Err())
}

func TestSequenceStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	ran := false
	seq := NewSequence(
		Await(func() *Future { return resolvedFuture(boom) }),
		Do(func() { ran = true }),
	)
	seq.Update()
	require.True(t, seq.Done())
	assert.ErrorIs(t, seq.Err(), boom)
	assert.False(t, ran)
}

func TestSequenceEmpty(t *testing.T) {
	seq := NewSequence()
	seq.Update()
	assert.True(t, seq.Done())
}

func TestFrameClockExactSeconds(t *testing.T) {
	c := NewFrameClock(60)
	for i := 0; i < 120; i++ {
		c.Tick()
	}
	assert.Equal(t, int64(120), c.Frames())
	assert.Equal(t, "2s", c.Now().String())
}
