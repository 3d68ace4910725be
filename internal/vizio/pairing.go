package vizio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrPairingFailed marks pairing handshake failures (wrong PIN, expired
// session) as distinct from transport errors. The caller may retry
// CompletePair with a new PIN or restart from BeginPair.
var ErrPairingFailed = errors.New("pairing failed")

// PairingSession holds the TV-issued token for an in-flight pairing handshake
type PairingSession struct {
	Token int
}

// BeginPair starts the pairing handshake. The TV displays a 4-digit PIN on
// screen and returns a session token for CompletePair.
func (c *Client) BeginPair(ctx context.Context) (*PairingSession, error) {
	payload := map[string]interface{}{
		"DEVICE_NAME": c.deviceName,
		"DEVICE_ID":   c.deviceID,
	}

	res, env, err := c.do(ctx, http.MethodPut, "/pairing/start", payload, false)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("%w: start rejected with %s", ErrPairingFailed, res.Describe())
	}

	var it struct {
		PairingReqToken int `json:"PAIRING_REQ_TOKEN"`
	}
	if err := json.Unmarshal(env.Item, &it); err != nil || it.PairingReqToken == 0 {
		return nil, fmt.Errorf("%w: no pairing token in response", ErrPairingFailed)
	}

	c.logger.Info().
		Int("token", it.PairingReqToken).
		Msg("Pairing started, PIN displayed on TV")

	return &PairingSession{Token: it.PairingReqToken}, nil
}

// CompletePair sends the on-screen PIN back to the TV and returns the durable
// auth token on success. A wrong PIN fails without consuming the session.
func (c *Client) CompletePair(ctx context.Context, session *PairingSession, pin string) (string, error) {
	if session == nil {
		return "", fmt.Errorf("%w: no pairing session", ErrPairingFailed)
	}
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return "", fmt.Errorf("%w: empty PIN", ErrPairingFailed)
	}

	payload := map[string]interface{}{
		"DEVICE_ID":         c.deviceID,
		"PAIRING_REQ_TOKEN": session.Token,
		"CHALLENGE_TYPE":    1,
		"RESPONSE_VALUE":    pin,
	}

	res, env, err := c.do(ctx, http.MethodPut, "/pairing/pair", payload, false)
	if err != nil {
		return "", err
	}
	if !res.Success {
		return "", fmt.Errorf("%w: %s", ErrPairingFailed, res.Describe())
	}

	var it struct {
		AuthToken string `json:"AUTH_TOKEN"`
	}
	if err := json.Unmarshal(env.Item, &it); err != nil || it.AuthToken == "" {
		return "", fmt.Errorf("%w: no auth token in response", ErrPairingFailed)
	}

	c.logger.Info().Msg("Pairing completed")

	return it.AuthToken, nil
}

// CancelPair abandons an in-flight pairing session
func (c *Client) CancelPair(ctx context.Context, session *PairingSession) error {
	if session == nil {
		return nil
	}

	payload := map[string]interface{}{
		"DEVICE_ID":         c.deviceID,
		"PAIRING_REQ_TOKEN": session.Token,
	}

	res, _, err := c.do(ctx, http.MethodPut, "/pairing/cancel", payload, false)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: cancel rejected with %s", ErrPairingFailed, res.Describe())
	}
	return nil
}
