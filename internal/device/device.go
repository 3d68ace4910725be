// Copyright 2026 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package device

// Device represents a controllable device that can process commands
type Device interface {
	// Process handles a JSON-encoded action and executes the corresponding operation
	Process(actionJSON []byte) (*ActionResponse, error)

	// GetDeviceInfo returns basic information about the device
	GetDeviceInfo() DeviceInfo
}

// DeviceInfo contains basic information about a device
type DeviceInfo struct {
	Type         string   `json:"type"`
	Model        string   `json:"model"`
	Address      string   `json:"address"`
	Capabilities []string `json:"capabilities"`
}

// ActionType represents the type of action to perform
type ActionType string

const (
	ActionTypeRemote  ActionType = "remote"
	ActionTypeControl ActionType = "control"
)

// ActionRequest represents a JSON action request
type ActionRequest struct {
	Type       ActionType             `json:"type"`       // "remote" or "control"
	Action     string                 `json:"action"`     // specific action name
	Parameters map[string]interface{} `json:"parameters"` // optional parameters
}

// ActionResponse represents the response from processing an action
type ActionResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RemoteAction represents available remote control actions
type RemoteAction string

const (
	RemoteActionPower       RemoteAction = "power"
	RemoteActionPowerOn     RemoteAction = "power_on"
	RemoteActionPowerOff    RemoteAction = "power_off"
	RemoteActionVolumeUp    RemoteAction = "volume_up"
	RemoteActionVolumeDown  RemoteAction = "volume_down"
	RemoteActionMute        RemoteAction = "mute"
	RemoteActionChannelUp   RemoteAction = "channel_up"
	RemoteActionChannelDown RemoteAction = "channel_down"
	RemoteActionPrevChannel RemoteAction = "prev_channel"
	RemoteActionUp          RemoteAction = "up"
	RemoteActionDown        RemoteAction = "down"
	RemoteActionLeft        RemoteAction = "left"
	RemoteActionRight       RemoteAction = "right"
	RemoteActionConfirm     RemoteAction = "confirm"
	RemoteActionBack        RemoteAction = "back"
	RemoteActionExit        RemoteAction = "exit"
	RemoteActionMenu        RemoteAction = "menu"
	RemoteActionHome        RemoteAction = "home"
	RemoteActionInfo        RemoteAction = "info"
	RemoteActionPlay        RemoteAction = "play"
	RemoteActionPause       RemoteAction = "pause"
	RemoteActionNum0        RemoteAction = "num_0"
	RemoteActionNum1        RemoteAction = "num_1"
	RemoteActionNum2        RemoteAction = "num_2"
	RemoteActionNum3        RemoteAction = "num_3"
	RemoteActionNum4        RemoteAction = "num_4"
	RemoteActionNum5        RemoteAction = "num_5"
	RemoteActionNum6        RemoteAction = "num_6"
	RemoteActionNum7        RemoteAction = "num_7"
	RemoteActionNum8        RemoteAction = "num_8"
	RemoteActionNum9        RemoteAction = "num_9"
)

// ControlAction represents available control API actions
type ControlAction string

const (
	ControlActionPowerState   ControlAction = "power_state"
	ControlActionCurrentInput ControlAction = "current_input"
	ControlActionInputList    ControlAction = "input_list"
	ControlActionSetInput     ControlAction = "set_input"
	ControlActionAppList      ControlAction = "app_list"
	ControlActionCurrentApp   ControlAction = "current_app"
	ControlActionLaunchApp    ControlAction = "launch_app"
	ControlActionChannel      ControlAction = "channel"
)
