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

package vizio

import (
	"context"
	"encoding/json"
	"fmt"

	"vizctl/internal/device"
)

// Remote implements the Device interface for Vizio SmartCast TVs
type Remote struct {
	client *Client
	info   device.DeviceInfo
}

// NewRemote creates a Remote for the TV at address using the given auth token
func NewRemote(address, authToken string, debug bool) *Remote {
	client := NewClient(address, authToken, debug)

	return &Remote{
		client: client,
		info: device.DeviceInfo{
			Type:    "smartcast_tv",
			Model:   "Vizio SmartCast",
			Address: client.Address(),
			Capabilities: []string{
				"remote_control",
				"power_control",
				"input_control",
				"app_control",
			},
		},
	}
}

// Client exposes the underlying TV client
func (vr *Remote) Client() *Client {
	return vr.client
}

// GetDeviceInfo returns information about this TV
func (vr *Remote) GetDeviceInfo() device.DeviceInfo {
	return vr.info
}

// Process handles JSON action requests and routes them to the TV client
func (vr *Remote) Process(actionJSON []byte) (*device.ActionResponse, error) {
	request, err := parseActionRequest(actionJSON)
	if err != nil {
		return &device.ActionResponse{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	switch request.Type {
	case device.ActionTypeRemote:
		return vr.processRemoteAction(request)
	case device.ActionTypeControl:
		return vr.processControlAction(request)
	default:
		return &device.ActionResponse{
			Success: false,
			Error:   fmt.Sprintf("unsupported action type: %s", request.Type),
		}, nil
	}
}

// processRemoteAction handles key-press actions
func (vr *Remote) processRemoteAction(request *device.ActionRequest) (*device.ActionResponse, error) {
	ctx := context.Background()
	action := device.RemoteAction(request.Action)

	// Power actions read state or fire Wake-on-LAN, so they do not go
	// through the plain key table
	var res *Result
	var err error
	switch action {
	case device.RemoteActionPower:
		res, err = vr.client.PowerToggle(ctx)
	case device.RemoteActionPowerOn:
		res, err = vr.client.PowerOn(ctx)
	case device.RemoteActionPowerOff:
		res, err = vr.client.PowerOff(ctx)
	default:
		key, exists := remoteActionMap[action]
		if !exists {
			return &device.ActionResponse{
				Success: false,
				Error:   fmt.Sprintf("unsupported remote action: %s", request.Action),
			}, nil
		}
		res, err = vr.client.PressKey(ctx, key)
	}

	if err != nil {
		return &device.ActionResponse{
			Success: false,
			Error:   fmt.Sprintf("remote request failed: %v", err),
		}, nil
	}
	if !res.Success {
		return &device.ActionResponse{
			Success: false,
			Error:   fmt.Sprintf("TV rejected %s: %s", request.Action, res.Describe()),
		}, nil
	}

	return &device.ActionResponse{
		Success: true,
		Data:    fmt.Sprintf("Remote action '%s' executed successfully", request.Action),
	}, nil
}

// processControlAction handles query and selection actions
func (vr *Remote) processControlAction(request *device.ActionRequest) (*device.ActionResponse, error) {
	ctx := context.Background()

	switch device.ControlAction(request.Action) {
	case device.ControlActionPowerState:
		on, err := vr.client.PowerState(ctx)
		if err != nil {
			return failureResponse(err), nil
		}
		return &device.ActionResponse{Success: true, Data: map[string]bool{"power": on}}, nil

	case device.ControlActionCurrentInput:
		name, err := vr.client.CurrentInput(ctx)
		if err != nil {
			return failureResponse(err), nil
		}
		return &device.ActionResponse{Success: true, Data: map[string]string{"input": name}}, nil

	case device.ControlActionInputList:
		inputs, err := vr.client.ListInputs(ctx)
		if err != nil {
			return failureResponse(err), nil
		}
		return &device.ActionResponse{Success: true, Data: inputs}, nil

	case device.ControlActionSetInput:
		name, err := stringParameter(request, "name")
		if err != nil {
			return failureResponse(err), nil
		}
		res, err := vr.client.SelectInput(ctx, name)
		if err != nil {
			return failureResponse(err), nil
		}
		if !res.Success {
			return failureResponse(fmt.Errorf("TV rejected input change: %s", res.Describe())), nil
		}
		return &device.ActionResponse{Success: true, Data: fmt.Sprintf("Switched to input '%s'", name)}, nil

	case device.ControlActionAppList:
		return &device.ActionResponse{Success: true, Data: vr.client.Apps().Apps()}, nil

	case device.ControlActionCurrentApp:
		app, err := vr.client.CurrentApp(ctx)
		if err != nil {
			return failureResponse(err), nil
		}
		return &device.ActionResponse{Success: true, Data: app}, nil

	case device.ControlActionLaunchApp:
		name, err := stringParameter(request, "name")
		if err != nil {
			return failureResponse(err), nil
		}
		res, err := vr.client.LaunchApp(ctx, name)
		if err != nil {
			return failureResponse(err), nil
		}
		if !res.Success {
			return failureResponse(fmt.Errorf("TV rejected app launch: %s", res.Describe())), nil
		}
		return &device.ActionResponse{Success: true, Data: fmt.Sprintf("Launched app '%s'", name)}, nil

	case device.ControlActionChannel:
		number, err := stringParameter(request, "number")
		if err != nil {
			return failureResponse(err), nil
		}
		if err := vr.client.SendChannel(ctx, number); err != nil {
			return failureResponse(err), nil
		}
		return &device.ActionResponse{Success: true, Data: fmt.Sprintf("Changed to channel %s", number)}, nil

	default:
		return &device.ActionResponse{
			Success: false,
			Error:   fmt.Sprintf("unsupported control action: %s", request.Action),
		}, nil
	}
}

func failureResponse(err error) *device.ActionResponse {
	return &device.ActionResponse{
		Success: false,
		Error:   err.Error(),
	}
}

// stringParameter pulls a required string out of the request parameters
func stringParameter(request *device.ActionRequest, key string) (string, error) {
	if request.Parameters == nil {
		return "", fmt.Errorf("%s parameter is required for %s action", key, request.Action)
	}
	value, exists := request.Parameters[key]
	if !exists {
		return "", fmt.Errorf("%s parameter is required for %s action", key, request.Action)
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("invalid %s parameter for %s action", key, request.Action)
	}
	return s, nil
}

// parseActionRequest parses JSON input into ActionRequest
func parseActionRequest(actionJSON []byte) (*device.ActionRequest, error) {
	var request device.ActionRequest
	if err := json.Unmarshal(actionJSON, &request); err != nil {
		return nil, fmt.Errorf("failed to parse action request: %w", err)
	}

	if request.Type == "" {
		return nil, fmt.Errorf("action type is required")
	}
	if request.Action == "" {
		return nil, fmt.Errorf("action is required")
	}

	return &request, nil
}

// remoteActionMap maps plain key-press actions to SmartCast key codes
var remoteActionMap = map[device.RemoteAction]Key{
	device.RemoteActionVolumeUp:    KeyVolumeUp,
	device.RemoteActionVolumeDown:  KeyVolumeDown,
	device.RemoteActionMute:        KeyMute,
	device.RemoteActionChannelUp:   KeyChannelUp,
	device.RemoteActionChannelDown: KeyChannelDown,
	device.RemoteActionPrevChannel: KeyPrevChannel,
	device.RemoteActionUp:          KeyUp,
	device.RemoteActionDown:        KeyDown,
	device.RemoteActionLeft:        KeyLeft,
	device.RemoteActionRight:       KeyRight,
	device.RemoteActionConfirm:     KeyOK,
	device.RemoteActionBack:        KeyBack,
	device.RemoteActionExit:        KeyExit,
	device.RemoteActionMenu:        KeyMenu,
	device.RemoteActionHome:        KeyHome,
	device.RemoteActionInfo:        KeyInfo,
	device.RemoteActionPlay:        KeyPlay,
	device.RemoteActionPause:       KeyPause,
	device.RemoteActionNum0:        {Codeset: 0, Code: '0'},
	device.RemoteActionNum1:        {Codeset: 0, Code: '1'},
	device.RemoteActionNum2:        {Codeset: 0, Code: '2'},
	device.RemoteActionNum3:        {Codeset: 0, Code: '3'},
	device.RemoteActionNum4:        {Codeset: 0, Code: '4'},
	device.RemoteActionNum5:        {Codeset: 0, Code: '5'},
	device.RemoteActionNum6:        {Codeset: 0, Code: '6'},
	device.RemoteActionNum7:        {Codeset: 0, Code: '7'},
	device.RemoteActionNum8:        {Codeset: 0, Code: '8'},
	device.RemoteActionNum9:        {Codeset: 0, Code: '9'},
}
