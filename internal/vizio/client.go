package vizio

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"vizctl/internal/logger"
)

// DefaultPort is the SmartCast API port on current firmware. Sets from the
// 2016-2017 era listen on 9000 instead; pass an explicit host:port for those.
const DefaultPort = 7345

var (
	// ErrNotPaired is returned when an authenticated operation is attempted
	// without an auth token. Pairing must happen first.
	ErrNotPaired = errors.New("not paired: auth token is empty")
)

// Client talks to a Vizio SmartCast TV over its local HTTPS REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
	deviceID   string
	deviceName string
	mac        string
	apps       *AppTable
	debug      bool
	logger     zerolog.Logger
}

// NewClient creates a client for the TV at host (IP or IP:port). The auth
// token may be empty for pairing; every other operation requires one.
func NewClient(host string, authToken string, debug bool) *Client {
	if !strings.Contains(host, ":") {
		host = fmt.Sprintf("%s:%d", host, DefaultPort)
	}

	client := &Client{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				// SmartCast TVs present a self-signed certificate on the
				// LAN; there is nothing to verify against.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		baseURL:    fmt.Sprintf("https://%s", host),
		authToken:  authToken,
		deviceID:   "vizctl-" + uuid.NewString(),
		deviceName: "vizctl",
		apps:       DefaultApps(),
		debug:      debug,
		logger:     logger.New(),
	}

	if debug {
		logger.SetLevel("debug")
	}

	return client
}

// SetAuthToken replaces the auth token, typically right after pairing
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// SetMAC records the TV's MAC address so PowerOn can send Wake-on-LAN first
func (c *Client) SetMAC(mac string) {
	c.mac = mac
}

// SetDeviceID overrides the generated pairing device identity. Both pairing
// phases must use the same identity, so set it before BeginPair if at all.
func (c *Client) SetDeviceID(id string) {
	c.deviceID = id
}

// SetAppTable swaps the launchable-app lookup table
func (c *Client) SetAppTable(t *AppTable) {
	if t != nil {
		c.apps = t
	}
}

// Apps returns the current launchable-app lookup table
func (c *Client) Apps() *AppTable {
	return c.apps
}

// Address returns the host:port the client targets
func (c *Client) Address() string {
	return strings.TrimPrefix(c.baseURL, "https://")
}

// do issues one request and interprets the response. Success means HTTP 200
// and, when the body carries STATUS.RESULT, that it reads SUCCESS. The raw
// body always rides along on the Result for debugging.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, authed bool) (*Result, *envelope, error) {
	if authed && c.authToken == "" {
		return nil, nil, ErrNotPaired
	}

	var body io.Reader
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("AUTH", c.authToken)
	}

	if c.debug {
		c.logger.Debug().
			Str("method", method).
			Str("url", url).
			Str("payload", string(data)).
			Msg("Sending SmartCast request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot reach TV at %s: %w", c.Address(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Best-effort parse; some firmware returns empty or non-JSON bodies
	env := &envelope{}
	_ = json.Unmarshal(raw, env)

	result := &Result{
		StatusCode: resp.StatusCode,
		Result:     env.Status.Result,
		Detail:     env.Status.Detail,
		Raw:        raw,
	}
	result.Success = resp.StatusCode == http.StatusOK &&
		(env.Status.Result == "" || strings.EqualFold(env.Status.Result, "SUCCESS"))

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Bool("success", result.Success).
			Str("body", string(raw)).
			Msg("SmartCast request completed")
	}

	return result, env, nil
}
