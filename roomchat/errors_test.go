package roomchat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatErrorWrapping(t *testing.T) {
	cause := errors.New("socket hang up")
	err := WrapError(ErrorTransport, "read failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsDecodeError(err))
	assert.Contains(t, err.Error(), "transport_error")
	assert.Contains(t, err.Error(), "socket hang up")
}

func TestChatErrorCodePredicatesThroughWrapping(t *testing.T) {
	inner := NewError(ErrorDecode, "malformed inbound frame")
	outer := fmt.Errorf("handling frame: %w", inner)

	assert.True(t, IsDecodeError(outer))
	assert.True(t, errors.Is(outer, &ChatError{Code: ErrorDecode}))
}

func TestConnectionStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closing", StateClosing.String())
	assert.Equal(t, "failed", StateFailed.String())
}
