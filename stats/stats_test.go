package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	t.Run("records observations in order", func(t *testing.T) {
		l := NewLog()
		l.Record("makeConnection", 12*time.Millisecond)
		l.Record("connect", 3*time.Millisecond)
		l.Record("send", time.Millisecond)

		obs := l.Observations()
		assert.Len(t, obs, 3)
		assert.Equal(t, "makeConnection", obs[0].Command)
		assert.Equal(t, "connect", obs[1].Command)
		assert.Equal(t, "send", obs[2].Command)
		assert.Equal(t, 12*time.Millisecond, obs[0].Duration)
	})

	t.Run("Observations returns an isolated snapshot", func(t *testing.T) {
		l := NewLog()
		l.Record("send", time.Millisecond)

		snap := l.Observations()
		l.Record("send", time.Millisecond)

		assert.Len(t, snap, 1)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("Reset clears the log", func(t *testing.T) {
		l := NewLog()
		l.Record("connect", time.Millisecond)
		l.Reset()

		assert.Equal(t, 0, l.Len())
		assert.Empty(t, l.Observations())
	})
}

func TestObservation(t *testing.T) {
	t.Run("Seconds converts the duration", func(t *testing.T) {
		o := Observation{Command: "send", Duration: 1500 * time.Millisecond}
		assert.InDelta(t, 1.5, o.Seconds(), 1e-9)
	})
}

func TestNop(t *testing.T) {
	t.Run("discards without panicking", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Nop{}.Record("send", time.Second)
		})
	})
}
