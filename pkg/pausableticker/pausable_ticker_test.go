package pausableticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, ticker *Ticker) uint64 {
	t.Helper()
	select {
	case tick := <-ticker.C:
		return tick
	case <-time.After(time.Second):
		require.FailNow(t, "no tick delivered")
	}
	return 0
}

func TestTicksAreConsecutive(t *testing.T) {
	ticker := New(time.Millisecond)
	defer ticker.Stop()

	assert.Equal(t, uint64(1), next(t, ticker))
	assert.Equal(t, uint64(2), next(t, ticker))
	assert.Equal(t, uint64(3), next(t, ticker))
}

func TestPauseResume(t *testing.T) {
	ticker := New(time.Millisecond)
	defer ticker.Stop()

	assert.Equal(t, uint64(1), next(t, ticker))

	ticker.Pause()
	assert.Eventually(t, ticker.Paused, time.Second, time.Millisecond)

	select {
	case <-ticker.C:
		assert.Fail(t, "tick delivered while paused")
	case <-time.After(20 * time.Millisecond):
	}

	ticker.Resume()
	assert.Equal(t, uint64(2), next(t, ticker))
	assert.Eventually(t, func() bool { return !ticker.Paused() }, time.Second, time.Millisecond)
}

func TestStop(t *testing.T) {
	ticker := New(time.Millisecond)
	assert.False(t, ticker.Stopped())

	ticker.Stop()
	assert.True(t, ticker.Stopped())

	// Stopping twice and pausing a stopped ticker are no-ops
	ticker.Stop()
	ticker.Pause()
	ticker.Resume()
}

func TestStopWhilePaused(t *testing.T) {
	ticker := New(time.Millisecond)
	ticker.Pause()
	ticker.Stop()
	assert.True(t, ticker.Stopped())
}
