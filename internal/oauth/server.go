package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// callbackResult carries the authorization response back from the browser.
type callbackResult struct {
	Code  string
	State string
	Error string
}

// callbackServer is the loopback HTTP server that receives the OAuth
// redirect.
type callbackServer struct {
	server   *http.Server
	listener net.Listener
	result   chan callbackResult
}

// newCallbackServer binds the loopback listener. Port 0 picks a free port;
// Addr reports the bound address for the redirect URL.
func newCallbackServer(port int) (*callbackServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to bind callback listener: %w", err)
	}

	cs := &callbackServer{
		listener: listener,
		result:   make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", cs.handleCallback)
	cs.server = &http.Server{Handler: mux}

	return cs, nil
}

// Addr returns the bound loopback address (host:port).
func (cs *callbackServer) Addr() string {
	return cs.listener.Addr().String()
}

// Start serves the callback endpoint in the background.
func (cs *callbackServer) Start() {
	go func() {
		if err := cs.server.Serve(cs.listener); err != nil && err != http.ErrServerClosed {
			// The flow fails via timeout; nothing useful to do here.
			_ = err
		}
	}()
}

func (cs *callbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result := callbackResult{
		Code:  query.Get("code"),
		State: query.Get("state"),
		Error: query.Get("error"),
	}

	select {
	case cs.result <- result:
	default:
	}

	w.Header().Set("Content-Type", "text/html")
	if result.Error != "" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "<html><body><h1>Sign-in failed</h1><p>Error: %s</p><p>You can close this window.</p></body></html>", result.Error)
		return
	}
	fmt.Fprint(w, "<html><body><h1>Signed in to HireFlux</h1><p>You can close this window and return to the terminal.</p></body></html>")
}

// Wait blocks until the browser redirect arrives or the timeout elapses.
func (cs *callbackServer) Wait(timeout time.Duration) (*callbackResult, error) {
	select {
	case result := <-cs.result:
		return &result, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("timeout waiting for OAuth callback")
	}
}

// Shutdown stops the callback server.
func (cs *callbackServer) Shutdown(ctx context.Context) error {
	return cs.server.Shutdown(ctx)
}
