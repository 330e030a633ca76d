package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusInvokesListener(t *testing.T) {
	d := NewDispatcher[string]()
	called := 0
	d.Listen("url", func() { called++ })

	d.Focus("url")
	assert.Equal(t, 1, called)
}

func TestFocusUnboundSlotIsNoOp(t *testing.T) {
	d := NewDispatcher[string]()
	assert.NotPanics(t, func() { d.Focus("missing") })
}

func TestLastRegistrationWins(t *testing.T) {
	d := NewDispatcher[string]()
	var got string
	d.Listen("method", func() { got = "first" })
	d.Listen("method", func() { got = "second" })

	d.Focus("method")
	assert.Equal(t, "second", got)
}

func TestForget(t *testing.T) {
	d := NewDispatcher[string]()
	called := false
	d.Listen("value", func() { called = true })
	d.Forget("value")

	d.Focus("value")
	assert.False(t, called)
}

func TestDispatcherSupportsStructSlots(t *testing.T) {
	type slot struct {
		Row int
		Col string
	}
	d := NewDispatcher[slot]()
	var got slot
	d.Listen(slot{1, "value"}, func() { got = slot{1, "value"} })

	d.Focus(slot{1, "value"})
	assert.Equal(t, slot{1, "value"}, got)
}
