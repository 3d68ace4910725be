package vizio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PowerState reports whether the TV is on
func (c *Client) PowerState(ctx context.Context) (bool, error) {
	res, env, err := c.do(ctx, http.MethodGet, "/state/device/power_mode", nil, true)
	if err != nil {
		return false, err
	}
	if !res.Success {
		return false, fmt.Errorf("power state query failed: %s", res.Describe())
	}
	if len(env.Items) == 0 {
		return false, fmt.Errorf("power state response carried no items")
	}

	var mode int
	if err := json.Unmarshal(env.Items[0].Value, &mode); err != nil {
		return false, fmt.Errorf("unexpected power state value: %w", err)
	}
	return mode == 1, nil
}
