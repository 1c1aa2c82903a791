package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client provides request/response access to the room directory and the
// identity service. The identity service stores the display name in a
// cookie, so one Client carries a cookie jar shared by all calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a directory/identity client.
// baseURL is the service root, e.g. "http://localhost:3000".
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// SetHTTPClient allows setting a custom HTTP client. The caller then
// owns cookie handling.
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// Room directory endpoints

// CreateRoom creates a new room and returns its record.
func (c *Client) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	var resp Room
	if err := c.post(ctx, "/create_room", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRoom fetches the record for one room id.
func (c *Client) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	var resp Room
	if err := c.get(ctx, "/room/"+url.PathEscape(roomID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRooms returns all rooms currently in the directory. Outside the
// service's operating window this fails with ErrOutsideHours.
func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	var resp []Room
	if err := c.get(ctx, "/room_ls", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteRoom removes a room from the directory.
func (c *Client) DeleteRoom(ctx context.Context, roomID string) error {
	return c.del(ctx, "/delete_room/"+url.PathEscape(roomID))
}

// Identity endpoints

// UserName returns the registered display name, or ErrNameNotSet.
func (c *Client) UserName(ctx context.Context) (string, error) {
	var resp UserNameRecord
	if err := c.get(ctx, "/user_name", &resp); err != nil {
		return "", err
	}
	return resp.UserName, nil
}

// SetUserName registers the display name with the identity service.
func (c *Client) SetUserName(ctx context.Context, userName string) error {
	if strings.TrimSpace(userName) == "" {
		return errors.New("empty user name")
	}
	return c.post(ctx, "/user_name", UserNameRecord{UserName: userName}, nil)
}

// ClearUserName removes the registered display name.
func (c *Client) ClearUserName(ctx context.Context) error {
	return c.del(ctx, "/user_name")
}

// Helper methods

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, dest)
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, dest)
}

func (c *Client) del(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return statusError(req.URL.Path, resp.StatusCode, body)
	}

	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
