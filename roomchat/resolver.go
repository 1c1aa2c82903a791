package roomchat

import (
	"context"
	"sync"

	"github.com/yorucha/roomchat-sdk-go/roomchat/rest"
)

// UnknownRoomName is the placeholder shown when a room's display name
// cannot be resolved.
const UnknownRoomName = "unknown"

// RoomNameResolver looks up room display names for presentation,
// independent of any live session. Lookups are best effort: a failure
// degrades to UnknownRoomName and is logged, never returned. Successful
// lookups are cached for the resolver's lifetime.
type RoomNameResolver struct {
	directory *rest.Client
	logger    Logger

	mu    sync.Mutex
	cache map[string]string
}

// NewRoomNameResolver wraps a directory client.
func NewRoomNameResolver(directory *rest.Client) *RoomNameResolver {
	return &RoomNameResolver{
		directory: directory,
		logger:    noopLogger{},
		cache:     make(map[string]string),
	}
}

// SetLogger overrides logger (optional).
func (r *RoomNameResolver) SetLogger(l Logger) {
	if l == nil {
		return
	}
	r.logger = l
}

// Resolve returns the display name for roomID, or UnknownRoomName when
// the lookup fails for any reason.
func (r *RoomNameResolver) Resolve(ctx context.Context, roomID string) string {
	r.mu.Lock()
	name, ok := r.cache[roomID]
	r.mu.Unlock()
	if ok {
		return name
	}

	room, err := r.directory.GetRoom(ctx, roomID)
	if err != nil {
		r.logger.Warn("room name lookup failed", map[string]any{
			"room_id": roomID,
			"error":   err.Error(),
		})
		return UnknownRoomName
	}

	r.mu.Lock()
	r.cache[roomID] = room.RoomName
	r.mu.Unlock()
	return room.RoomName
}
