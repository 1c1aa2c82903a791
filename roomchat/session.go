package roomchat

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/yorucha/roomchat-sdk-go/roomchat/internal"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Session owns one live duplex connection bound to a (room id, user name)
// pair. It keeps an append-only log of inbound messages in arrival order
// and exposes a fire-and-forget Send.
//
// A Session handle connects at most once. After a transport failure the
// handle stays in StateFailed; construct a new Session to retry. There is
// no automatic reconnection.
type Session struct {
	cfg        Config
	id         string
	logger     Logger
	conn       *internal.Conn
	writeCh    chan string
	dispatcher Dispatcher

	mu       sync.Mutex
	state    ConnectionState
	opened   bool
	cancel   context.CancelFunc
	log      []ChatMessage
	roomID   string
	userName string
}

// NewSession constructs a session with provided config.
// Use DefaultConfig() as a starting point and modify as needed.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:     cfg,
		id:      uuid.NewString(),
		logger:  noopLogger{},
		writeCh: make(chan string, 16),
		state:   StateClosed,
	}
}

// SetLogger overrides logger (optional).
func (s *Session) SetLogger(l Logger) {
	if l == nil {
		return
	}
	s.logger = l
}

// ID returns the session identifier used in log fields.
func (s *Session) ID() string { return s.id }

// OnMessage registers the callback invoked once per decoded inbound
// frame, in arrival order.
func (s *Session) OnMessage(fn func(ChatMessage)) { s.dispatcher.SetOnMessage(fn) }

// OnError registers the callback for recoverable and fatal errors.
func (s *Session) OnError(fn func(error)) { s.dispatcher.SetOnError(fn) }

// OnStateChange registers the callback for connection state changes.
func (s *Session) OnStateChange(fn func(StateEvent)) { s.dispatcher.SetOnStateChange(fn) }

// State returns the current connection state.
func (s *Session) State() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RoomID returns the room this session was opened for.
func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

// UserName returns the display name this session was opened with.
func (s *Session) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}

// Messages returns a copy of the message log in arrival order.
func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.log))
	copy(out, s.log)
	return out
}

// Open dials the chat endpoint for (roomID, userName) and starts the
// read/write loops. Register callbacks before calling Open.
func (s *Session) Open(ctx context.Context, roomID, userName string) error {
	s.mu.Lock()
	if s.opened {
		s.mu.Unlock()
		return NewError(ErrorHandleUsed, "session handle already used; construct a new handle")
	}
	s.opened = true
	s.state = StateConnecting
	s.mu.Unlock()
	s.dispatcher.fireState(StateEvent{OldState: StateClosed, NewState: StateConnecting})

	addr, err := s.endpoint(roomID, userName)
	if err != nil {
		s.toFailed(StateConnecting, err)
		return err
	}

	dialCtx := ctx
	if s.cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, s.cfg.HandshakeTimeout)
		defer cancel()
	}

	ws, _, err := websocket.Dial(dialCtx, addr, nil)
	if err != nil {
		terr := WrapError(ErrorTransport, "dial failed", err)
		s.toFailed(StateConnecting, terr)
		return terr
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.conn = internal.NewConn(ws, s.cfg.ReadTimeout, s.cfg.WriteTimeout)
	s.cancel = cancel
	s.roomID = roomID
	s.userName = userName
	s.state = StateOpen
	s.mu.Unlock()
	s.dispatcher.fireState(StateEvent{OldState: StateConnecting, NewState: StateOpen})
	s.logger.Info("session open", map[string]any{
		"session_id": s.id,
		"room_id":    roomID,
		"user_name":  userName,
	})

	go s.readLoop(runCtx)
	go s.writeLoop(runCtx)
	return nil
}

// Send writes one outbound text frame carrying the trimmed text.
// Empty input (after trimming) produces no frame. If the session is not
// open the message is silently dropped: no queuing, no retry.
func (s *Session) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	s.mu.Lock()
	open := s.state == StateOpen
	s.mu.Unlock()
	if !open {
		return nil
	}

	select {
	case s.writeCh <- text:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears down the session: deregisters all callbacks, stops the
// loops, and closes the connection. Frames still in flight on the
// transport never reach the log or any callback after Close returns.
// Idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	// Failed is terminal: the failure path already tore the
	// connection down, so there is nothing left to close.
	if s.state == StateClosed || s.state == StateFailed {
		s.mu.Unlock()
		return nil
	}
	prev := s.state
	s.state = StateClosing
	cancel := s.cancel
	s.cancel = nil
	conn := s.conn
	s.mu.Unlock()

	s.dispatcher.fireState(StateEvent{OldState: prev, NewState: StateClosing})
	s.dispatcher.Reset()
	if cancel != nil {
		cancel()
	}
	if conn != nil {
		if err := conn.Close(websocket.StatusNormalClosure, "session closed"); err != nil {
			s.logger.Debug("connection close", map[string]any{
				"session_id": s.id,
				"error":      err.Error(),
			})
		}
	}

	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()
	s.logger.Info("session closed", map[string]any{"session_id": s.id})
	return nil
}

// endpoint builds the duplex address: {ws base}/websocket/{room_id}
// with user_name as a percent-encoded query parameter.
func (s *Session) endpoint(roomID, userName string) (string, error) {
	if roomID == "" {
		return "", NewError(ErrorAddress, "empty room id")
	}
	if userName == "" {
		return "", NewError(ErrorAddress, "empty user name")
	}
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", WrapError(ErrorAddress, "invalid base url", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", NewError(ErrorAddress, "unsupported base url scheme "+u.Scheme)
	}
	if u.Host == "" {
		return "", NewError(ErrorAddress, "base url has no host")
	}
	base := strings.TrimRight(u.String(), "/")
	query := url.Values{"user_name": {userName}}.Encode()
	return base + "/websocket/" + url.PathEscape(roomID) + "?" + query, nil
}

func (s *Session) readLoop(ctx context.Context) {
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			if isExpectedDisconnect(ctx, err) {
				return
			}
			s.fail(WrapError(ErrorTransport, "read failed", err))
			return
		}
		if typ != websocket.MessageText {
			s.dispatcher.fireError(NewError(ErrorDecode, "unexpected non-text frame"))
			continue
		}
		msg, err := decodeFrame(data)
		if err != nil {
			s.logger.Warn("dropped undecodable frame", map[string]any{
				"session_id": s.id,
				"error":      err.Error(),
			})
			s.dispatcher.fireError(err)
			continue
		}
		if !s.append(msg) {
			return
		}
		s.dispatcher.fireMessage(msg)
	}
}

func (s *Session) writeLoop(ctx context.Context) {
	for {
		select {
		case text := <-s.writeCh:
			if err := s.conn.WriteText(ctx, text); err != nil {
				if isExpectedDisconnect(ctx, err) {
					return
				}
				s.fail(WrapError(ErrorTransport, "write failed", err))
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// append adds one message to the log. It refuses once the session has
// left StateOpen, so a closing session's residual frames are dropped.
func (s *Session) append(msg ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return false
	}
	s.log = append(s.log, msg)
	return true
}

// fail moves the session to StateFailed after a transport error.
// No effect when a Close is already under way.
func (s *Session) fail(err error) {
	s.mu.Lock()
	if s.state == StateClosing || s.state == StateClosed || s.state == StateFailed {
		s.mu.Unlock()
		return
	}
	prev := s.state
	s.state = StateFailed
	cancel := s.cancel
	s.cancel = nil
	conn := s.conn
	s.mu.Unlock()

	s.logger.Warn("session failed", map[string]any{
		"session_id": s.id,
		"error":      err.Error(),
	})
	s.dispatcher.fireError(err)
	s.dispatcher.fireState(StateEvent{OldState: prev, NewState: StateFailed, Err: err})
	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close(websocket.StatusInternalError, "transport failure")
	}
}

// toFailed marks an Open attempt as failed before any loop started.
// The error is returned to the caller, so only the state change is fired.
func (s *Session) toFailed(prev ConnectionState, err error) {
	s.mu.Lock()
	s.state = StateFailed
	s.mu.Unlock()
	s.dispatcher.fireState(StateEvent{OldState: prev, NewState: StateFailed, Err: err})
}

func isExpectedDisconnect(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}
