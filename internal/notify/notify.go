// Package notify subscribes to the HireFlux event stream and delivers
// application status changes to the TUI over a channel.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hireflux/cli/internal/types"
)

const (
	handshakeTimeout = 45 * time.Second
	readLimit        = 1 << 20
)

// Stream is a live subscription to application events.
type Stream struct {
	conn   *websocket.Conn
	events chan types.ApplicationEvent
	errs   chan error
}

// Connect dials the event stream. token authenticates the subscription.
func Connect(ctx context.Context, url, token string) (*Stream, error) {
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	headers := http.Header{}
	if token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := dialer.DialContext(ctx, url, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("event stream connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("event stream connection failed: %w", err)
	}
	conn.SetReadLimit(readLimit)

	s := &Stream{
		conn:   conn,
		events: make(chan types.ApplicationEvent, 16),
		errs:   make(chan error, 1),
	}

	go s.readLoop()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	return s, nil
}

// Events returns the channel of incoming status changes. It is closed when
// the stream ends.
func (s *Stream) Events() <-chan types.ApplicationEvent {
	return s.events
}

// Err returns the terminal stream error, if any, after Events closes.
func (s *Stream) Err() error {
	select {
	case err := <-s.errs:
		return err
	default:
		return nil
	}
}

// Close tears down the connection; the read loop drains and Events closes.
func (s *Stream) Close() error {
	return s.conn.Close()
}

func (s *Stream) readLoop() {
	defer close(s.events)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				select {
				case s.errs <- err:
				default:
				}
			}
			return
		}

		var event types.ApplicationEvent
		if err := json.Unmarshal(data, &event); err != nil {
			// Unknown frames are skipped; the stream also carries pings
			// and heartbeats we don't model.
			continue
		}
		if event.ApplicationID == "" {
			continue
		}

		s.events <- event
	}
}
