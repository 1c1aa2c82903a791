package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrOutsideHours is returned when the service rejects a request
	// because the current time is outside its operating window.
	ErrOutsideHours = errors.New("service is outside its operating hours")

	// ErrRoomNotFound is returned when a room id does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrNameNotSet is returned by UserName when no display name has
	// been registered. Callers should run the name-selection flow.
	ErrNameNotSet = errors.New("user name is not set")
)

// StatusError is a non-success response that does not map to one of the
// typed sentinel errors.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// statusError maps a non-2xx response to its error category. The 403 is
// the time-limit middleware; 404 meaning depends on the endpoint.
func statusError(path string, status int, body []byte) error {
	switch {
	case status == http.StatusForbidden:
		return ErrOutsideHours
	case status == http.StatusNotFound && path == "/user_name":
		return ErrNameNotSet
	case status == http.StatusNotFound && strings.HasPrefix(path, "/room/"):
		return ErrRoomNotFound
	}
	return &StatusError{Status: status, Body: strings.TrimSpace(string(body))}
}
