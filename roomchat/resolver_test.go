package roomchat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/yorucha/roomchat-sdk-go/roomchat/rest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReturnsRoomName(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "/room/r1", r.URL.Path)
		json.NewEncoder(w).Encode(rest.Room{RoomID: "r1", RoomName: "night owls", RoomTime: 30})
	}))
	defer srv.Close()

	resolver := NewRoomNameResolver(rest.NewClient(srv.URL))

	assert.Equal(t, "night owls", resolver.Resolve(context.Background(), "r1"))
	assert.Equal(t, "night owls", resolver.Resolve(context.Background(), "r1"))
	assert.Equal(t, int32(1), hits.Load(), "second resolve must hit the cache")
}

func TestResolveFallsBackToUnknown(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resolver := NewRoomNameResolver(rest.NewClient(srv.URL))

	assert.Equal(t, UnknownRoomName, resolver.Resolve(context.Background(), "missing"))
	assert.Equal(t, UnknownRoomName, resolver.Resolve(context.Background(), "missing"))
	assert.Equal(t, int32(2), hits.Load(), "failures must not be cached")
}

func TestResolveNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	resolver := NewRoomNameResolver(rest.NewClient(srv.URL))

	assert.Equal(t, UnknownRoomName, resolver.Resolve(context.Background(), "r1"))
}
