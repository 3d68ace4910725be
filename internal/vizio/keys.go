package vizio

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"vizctl/internal/wol"
)

// Remote key codes for Vizio SmartCast TVs, discovered against real
// hardware. The TV exposes no directory of these, so the table is what
// probing has confirmed.
var (
	// Power
	KeyPowerOn  = Key{Codeset: 11, Code: 1}
	KeyPowerOff = Key{Codeset: 11, Code: 0}

	// Volume
	KeyVolumeUp   = Key{Codeset: 5, Code: 1}
	KeyVolumeDown = Key{Codeset: 5, Code: 0}
	KeyMute       = Key{Codeset: 5, Code: 4}

	// Channel
	KeyChannelUp   = Key{Codeset: 8, Code: 1}
	KeyChannelDown = Key{Codeset: 8, Code: 0}
	KeyPrevChannel = Key{Codeset: 8, Code: 2}

	// Navigation (D-pad)
	KeyUp    = Key{Codeset: 3, Code: 8}
	KeyDown  = Key{Codeset: 3, Code: 0}
	KeyLeft  = Key{Codeset: 3, Code: 1}
	KeyRight = Key{Codeset: 3, Code: 7}
	KeyOK    = Key{Codeset: 3, Code: 2}

	// Menu
	KeyBack = Key{Codeset: 4, Code: 0}
	KeyExit = Key{Codeset: 4, Code: 1}
	KeyHome = Key{Codeset: 4, Code: 3}
	KeyInfo = Key{Codeset: 4, Code: 6}
	KeyMenu = Key{Codeset: 4, Code: 8}

	// Playback
	KeyPause = Key{Codeset: 2, Code: 2}
	KeyPlay  = Key{Codeset: 2, Code: 3}
)

// namedKeys maps the CLI-facing names to key codes
var namedKeys = map[string]Key{
	"power-on":     KeyPowerOn,
	"power-off":    KeyPowerOff,
	"volume-up":    KeyVolumeUp,
	"volume-down":  KeyVolumeDown,
	"mute":         KeyMute,
	"channel-up":   KeyChannelUp,
	"channel-down": KeyChannelDown,
	"prev-channel": KeyPrevChannel,
	"up":           KeyUp,
	"down":         KeyDown,
	"left":         KeyLeft,
	"right":        KeyRight,
	"ok":           KeyOK,
	"back":         KeyBack,
	"exit":         KeyExit,
	"home":         KeyHome,
	"info":         KeyInfo,
	"menu":         KeyMenu,
	"pause":        KeyPause,
	"play":         KeyPlay,
}

// LookupKey resolves a named key like "volume-up"
func LookupKey(name string) (Key, bool) {
	key, ok := namedKeys[name]
	return key, ok
}

// KeyNames returns the known key names sorted alphabetically
func KeyNames() []string {
	names := make([]string, 0, len(namedKeys))
	for name := range namedKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DigitKey returns the key for a channel digit 0-9. Digit keys use the
// ASCII value of the character as the code.
func DigitKey(digit int) (Key, bool) {
	if digit < 0 || digit > 9 {
		return Key{}, false
	}
	return Key{Codeset: 0, Code: '0' + digit}, true
}

// SendKey sends the exact (codeset, code, action) triple requested. It is a
// pure fire-and-forget dispatch with no hidden state between calls.
func (c *Client) SendKey(ctx context.Context, codeset, code int, action Action) (*Result, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("invalid key action %q", action)
	}

	payload := keyCommand{
		KeyList: []keyEvent{{
			Codeset: codeset,
			Code:    code,
			Action:  string(action),
		}},
	}

	res, _, err := c.do(ctx, http.MethodPut, "/key_command/", payload, true)
	return res, err
}

// PressKey sends a KEYPRESS for the given key
func (c *Client) PressKey(ctx context.Context, key Key) (*Result, error) {
	return c.SendKey(ctx, key.Codeset, key.Code, KeyPressAction)
}

// SendChannel tunes to a channel by sending its digits one key at a time.
// The whole number is validated before any key goes out.
func (c *Client) SendChannel(ctx context.Context, channel string) error {
	if channel == "" {
		return fmt.Errorf("empty channel number")
	}
	for _, r := range channel {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid channel number %q", channel)
		}
	}

	for _, r := range channel {
		key, _ := DigitKey(int(r - '0'))
		res, err := c.PressKey(ctx, key)
		if err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("channel digit %c rejected: %s", r, res.Describe())
		}
	}
	return nil
}

// PowerOn turns the TV on. When a MAC address is known a Wake-on-LAN magic
// packet goes out first; a sleeping TV does not always service the API.
func (c *Client) PowerOn(ctx context.Context) (*Result, error) {
	if c.mac != "" {
		if err := wol.Wake(c.mac); err != nil {
			c.logger.Warn().Err(err).Str("mac", c.mac).Msg("Wake-on-LAN failed, trying API command")
		}
	}
	return c.PressKey(ctx, KeyPowerOn)
}

// PowerOff turns the TV off
func (c *Client) PowerOff(ctx context.Context) (*Result, error) {
	return c.PressKey(ctx, KeyPowerOff)
}

// PowerToggle reads the power state and sends the opposite command. A TV in
// deep sleep cannot answer the state query, so a failed read with a known MAC
// is treated as off and the toggle tries to wake it.
func (c *Client) PowerToggle(ctx context.Context) (*Result, error) {
	on, err := c.PowerState(ctx)
	if err != nil {
		if c.mac != "" {
			return c.PowerOn(ctx)
		}
		return nil, err
	}
	if on {
		return c.PowerOff(ctx)
	}
	return c.PowerOn(ctx)
}
