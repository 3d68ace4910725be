package vizio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnknownInput is returned when an input name matches nothing the TV
// reports
var ErrUnknownInput = errors.New("unknown input")

const (
	currentInputPath = "/menu_native/dynamic/tv_settings/devices/current_input"
	inputListPath    = "/menu_native/dynamic/tv_settings/devices/name_input"
)

// Input describes one of the TV's AV inputs. CName is the fixed port name
// (hdmi1), Name the user-visible label which owners often rename.
type Input struct {
	CName string `json:"cname"`
	Name  string `json:"name"`
}

// inputValue handles the two shapes VALUE takes in input items: a bare
// string or an object with a NAME field
func inputValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"NAME"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Name
	}
	return ""
}

// ListInputs enumerates the TV's inputs. Nothing is cached or persisted;
// the TV owns this list.
func (c *Client) ListInputs(ctx context.Context) ([]Input, error) {
	res, env, err := c.do(ctx, http.MethodGet, inputListPath, nil, true)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("input list query failed: %s", res.Describe())
	}

	inputs := make([]Input, 0, len(env.Items))
	for _, it := range env.Items {
		name := inputValue(it.Value)
		if name == "" && it.CName == "" {
			continue
		}
		inputs = append(inputs, Input{CName: it.CName, Name: name})
	}
	return inputs, nil
}

// CurrentInput reports which input the TV is showing
func (c *Client) CurrentInput(ctx context.Context) (string, error) {
	_, it, err := c.currentInputItem(ctx)
	if err != nil {
		return "", err
	}
	return inputValue(it.Value), nil
}

// inputModify is the read-modify-write body for selecting an input. The
// HASHVAL from the current setting is echoed back verbatim; the TV rejects
// writes carrying a stale or missing hash.
type inputModify struct {
	Request string          `json:"REQUEST"`
	Value   string          `json:"VALUE"`
	HashVal json.RawMessage `json:"HASHVAL"`
}

// SelectInput switches the TV to the named input. Matching against the
// TV-reported list is case-insensitive over both port names and labels.
func (c *Client) SelectInput(ctx context.Context, name string) (*Result, error) {
	inputs, err := c.ListInputs(ctx)
	if err != nil {
		return nil, err
	}

	target := ""
	for _, in := range inputs {
		if strings.EqualFold(in.Name, name) || strings.EqualFold(in.CName, name) {
			target = in.Name
			if target == "" {
				target = in.CName
			}
			break
		}
	}
	if target == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, name)
	}

	_, it, err := c.currentInputItem(ctx)
	if err != nil {
		return nil, err
	}
	if len(it.HashVal) == 0 {
		return nil, fmt.Errorf("could not read input hash from TV")
	}

	payload := inputModify{
		Request: "MODIFY",
		Value:   target,
		HashVal: it.HashVal,
	}

	res, _, err := c.do(ctx, http.MethodPut, currentInputPath, payload, true)
	return res, err
}

// currentInputItem fetches the current_input setting item, which carries
// both the value and the HASHVAL needed to modify it
func (c *Client) currentInputItem(ctx context.Context) (*Result, *item, error) {
	res, env, err := c.do(ctx, http.MethodGet, currentInputPath, nil, true)
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		return res, nil, fmt.Errorf("current input query failed: %s", res.Describe())
	}
	if len(env.Items) == 0 {
		return res, nil, fmt.Errorf("current input response carried no items")
	}
	return res, &env.Items[0], nil
}
