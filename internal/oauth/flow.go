// Package oauth implements the HireFlux sign-in flow: OAuth 2.0
// authorization code with PKCE against the HireFlux identity service, using
// a loopback callback server and the system browser.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// CallbackTimeout is the maximum time to wait for the browser redirect
	CallbackTimeout = 5 * time.Minute
	// TokenRequestTimeout bounds the code-for-token exchange
	TokenRequestTimeout = 30 * time.Second
)

// Config holds the identity-service endpoints and client registration.
type Config struct {
	AuthURL  string
	TokenURL string
	ClientID string
	Scope    string
	// CallbackPort pins the loopback port; 0 picks a free one.
	CallbackPort int
}

// tokenResponse is the identity service's token payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Login runs the full PKCE flow: opens the browser, waits for the loopback
// callback, verifies state and exchanges the code for a token.
func Login(ctx context.Context, config *Config) (*oauth2.Token, error) {
	pkce, err := newPKCEPair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PKCE pair: %w", err)
	}

	state, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	server, err := newCallbackServer(config.CallbackPort)
	if err != nil {
		return nil, err
	}
	server.Start()
	defer server.Shutdown(context.Background())

	redirectURL := fmt.Sprintf("http://%s/callback", server.Addr())
	authURL := buildAuthURL(config, redirectURL, pkce.Challenge, state)

	if err := openBrowser(authURL); err != nil {
		return nil, fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, authURL)
	}

	result, err := server.Wait(CallbackTimeout)
	if err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, fmt.Errorf("authorization failed: %s", result.Error)
	}
	if result.Code == "" {
		return nil, fmt.Errorf("no authorization code received")
	}
	if result.State != state {
		return nil, fmt.Errorf("state mismatch (possible CSRF attack)")
	}

	return exchangeCode(ctx, config, result.Code, redirectURL, pkce.Verifier)
}

func buildAuthURL(config *Config, redirectURL, codeChallenge, state string) string {
	params := url.Values{}
	params.Set("client_id", config.ClientID)
	params.Set("redirect_uri", redirectURL)
	params.Set("response_type", "code")
	params.Set("scope", config.Scope)
	params.Set("state", state)
	params.Set("code_challenge", codeChallenge)
	params.Set("code_challenge_method", "S256")

	return config.AuthURL + "?" + params.Encode()
}

// exchangeCode trades the authorization code for tokens.
func exchangeCode(ctx context.Context, config *Config, code, redirectURL, verifier string) (*oauth2.Token, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", redirectURL)
	data.Set("client_id", config.ClientID)
	data.Set("code_verifier", verifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: TokenRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return token, nil
}

// openBrowser opens the default browser with the given URL.
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}
