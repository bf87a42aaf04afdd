package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaders(t *testing.T) {
	t.Run("Get returns value and presence", func(t *testing.T) {
		h := Headers{{"destination", "/queue/a"}}

		v, ok := h.Get("destination")
		assert.True(t, ok)
		assert.Equal(t, "/queue/a", v)

		_, ok = h.Get("receipt")
		assert.False(t, ok)
	})

	t.Run("Set appends new names in order", func(t *testing.T) {
		var h Headers
		h.Set("a", "1")
		h.Set("b", "2")
		h.Set("c", "3")

		assert.Equal(t, Headers{{"a", "1"}, {"b", "2"}, {"c", "3"}}, h)
	})

	t.Run("Set overwrites existing name in place", func(t *testing.T) {
		var h Headers
		h.Set("a", "1")
		h.Set("b", "2")
		h.Set("a", "9")

		assert.Equal(t, Headers{{"a", "9"}, {"b", "2"}}, h)
		assert.Equal(t, 2, h.Len())
	})

	t.Run("Del removes a name", func(t *testing.T) {
		h := Headers{{"a", "1"}, {"b", "2"}, {"c", "3"}}
		h.Del("b")

		assert.Equal(t, Headers{{"a", "1"}, {"c", "3"}}, h)

		// Deleting an absent name is a no-op.
		h.Del("missing")
		assert.Equal(t, 2, h.Len())
	})

	t.Run("Contains reports presence", func(t *testing.T) {
		h := Headers{{"ack", "client"}}
		assert.True(t, h.Contains("ack"))
		assert.False(t, h.Contains("login"))
	})

	t.Run("Clone is independent of the original", func(t *testing.T) {
		h := Headers{{"a", "1"}}
		c := h.Clone()
		c.Set("a", "2")
		c.Set("b", "3")

		v, _ := h.Get("a")
		assert.Equal(t, "1", v)
		assert.Equal(t, 1, h.Len())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("Clone of nil stays nil", func(t *testing.T) {
		var h Headers
		assert.Nil(t, h.Clone())
	})
}

func TestNew(t *testing.T) {
	t.Run("creates frame with ordered headers", func(t *testing.T) {
		f := New(CmdSubscribe, Header{"destination", "/queue/a"}, Header{"ack", "client"})

		assert.Equal(t, CmdSubscribe, f.Command)
		assert.Equal(t, Headers{{"destination", "/queue/a"}, {"ack", "client"}}, f.Headers)
		assert.Nil(t, f.Body)
	})

	t.Run("duplicate names collapse to the last value", func(t *testing.T) {
		f := New(CmdSend, Header{"priority", "1"}, Header{"priority", "9"})

		assert.Equal(t, 1, f.Headers.Len())
		v, _ := f.Headers.Get("priority")
		assert.Equal(t, "9", v)
	})
}
