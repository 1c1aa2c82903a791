package roomchat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherFiresMessage(t *testing.T) {
	var got ChatMessage
	var errCalled bool
	var d Dispatcher
	d.SetOnMessage(func(msg ChatMessage) { got = msg })
	d.SetOnError(func(err error) { errCalled = true })

	d.fireMessage(ChatMessage{UserName: "alice", Text: "hi", TimeStamp: time.Unix(0, 0)})

	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, "hi", got.Text)
	assert.False(t, errCalled)
}

func TestDispatcherReset(t *testing.T) {
	var calls int
	var d Dispatcher
	d.SetOnMessage(func(ChatMessage) { calls++ })
	d.SetOnError(func(error) { calls++ })
	d.SetOnStateChange(func(StateEvent) { calls++ })

	d.Reset()
	d.Reset() // idempotent

	d.fireMessage(ChatMessage{Text: "dropped"})
	d.fireError(NewError(ErrorDecode, "dropped"))
	d.fireState(StateEvent{OldState: StateOpen, NewState: StateClosed})

	assert.Zero(t, calls)
}

func TestDispatcherNilCallbacks(t *testing.T) {
	var d Dispatcher
	d.fireMessage(ChatMessage{})
	d.fireError(NewError(ErrorUnknown, "x"))
	d.fireState(StateEvent{})
}
