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
	"encoding/json"
	"fmt"
)

// Action represents a key event type understood by the key_command endpoint
type Action string

const (
	KeyPressAction Action = "KEYPRESS"
	KeyDownAction  Action = "KEYDOWN"
	KeyUpAction    Action = "KEYUP"
)

// Valid reports whether the action is one the TV accepts
func (a Action) Valid() bool {
	switch a {
	case KeyPressAction, KeyDownAction, KeyUpAction:
		return true
	}
	return false
}

// Key identifies a SmartCast remote key as a (codeset, code) pair
type Key struct {
	Codeset int
	Code    int
}

// keyCommand is the request body for /key_command/
type keyCommand struct {
	KeyList []keyEvent `json:"KEYLIST"`
}

type keyEvent struct {
	Codeset int    `json:"CODESET"`
	Code    int    `json:"CODE"`
	Action  string `json:"ACTION"`
}

// envelope mirrors the SmartCast response wrapper. Firmware versions differ
// in which fields they populate, so everything is optional and parsed
// best-effort.
type envelope struct {
	Status responseStatus  `json:"STATUS"`
	Item   json.RawMessage `json:"ITEM"`
	Items  []item          `json:"ITEMS"`
}

type responseStatus struct {
	Result string `json:"RESULT"`
	Detail string `json:"DETAIL"`
}

type item struct {
	CName   string          `json:"CNAME"`
	Name    string          `json:"NAME"`
	Type    string          `json:"TYPE"`
	Value   json.RawMessage `json:"VALUE"`
	HashVal json.RawMessage `json:"HASHVAL"`
}

// Result carries the best-effort interpretation of a TV response together
// with the raw details, since the vendor's status signaling is inconsistent
// across firmware versions.
type Result struct {
	Success    bool
	StatusCode int
	Result     string
	Detail     string
	Raw        []byte
}

// Describe renders the response status for error messages and debug output
func (r *Result) Describe() string {
	if r == nil {
		return "no response"
	}
	if r.Result == "" {
		return fmt.Sprintf("HTTP %d", r.StatusCode)
	}
	if r.Detail == "" {
		return fmt.Sprintf("HTTP %d (%s)", r.StatusCode, r.Result)
	}
	return fmt.Sprintf("HTTP %d (%s: %s)", r.StatusCode, r.Result, r.Detail)
}
