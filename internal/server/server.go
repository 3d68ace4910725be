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

// Package server exposes the TV operations over a small LAN HTTP API, so
// wall tablets and scripts can drive the TV without the CLI.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"vizctl/internal/logger"
	"vizctl/internal/vizio"
)

// Server handles REST API requests against a single paired TV
type Server struct {
	client *vizio.Client
	cache  *StateCache
	logger zerolog.Logger
	server *http.Server
	router *mux.Router
}

// New creates a server driving the given TV client
func New(client *vizio.Client) *Server {
	s := &Server{
		client: client,
		cache:  NewStateCache(16, 2*time.Second),
		logger: logger.New(),
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP API server and blocks until it stops
func (s *Server) Start(address string) error {
	s.server = &http.Server{
		Addr:         address,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().
		Str("address", address).
		Str("tv", s.client.Address()).
		Msg("Starting command API server")

	return s.server.ListenAndServe()
}

// Stop stops the API server
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

func (s *Server) buildRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(s.loggingMiddleware)
	router.Use(s.corsMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/command/{name}", s.handleCommand).Methods("POST")
	api.HandleFunc("/key", s.handleKey).Methods("POST")
	api.HandleFunc("/inputs", s.handleListInputs).Methods("GET")
	api.HandleFunc("/inputs/{name}", s.handleSelectInput).Methods("POST")
	api.HandleFunc("/apps", s.handleListApps).Methods("GET")
	api.HandleFunc("/apps/{name}", s.handleLaunchApp).Methods("POST")
	api.HandleFunc("/channel/{number}", s.handleChannel).Methods("POST")

	return router
}

// Middleware
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("API request")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Response helpers
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	s.sendJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, apiResponse{Success: false, Error: message})
}

// sendResult translates a TV result into an API response
func (s *Server) sendResult(w http.ResponseWriter, res *vizio.Result, err error, data interface{}) {
	switch {
	case err != nil:
		s.sendError(w, http.StatusBadGateway, err.Error())
	case !res.Success:
		s.sendError(w, http.StatusBadGateway, fmt.Sprintf("TV rejected command: %s", res.Describe()))
	default:
		s.sendSuccess(w, data)
	}
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, map[string]string{
		"status": "ok",
		"tv":     s.client.Address(),
	})
}

// statusReport aggregates the cheap TV state queries for polling UIs
type statusReport struct {
	Power bool              `json:"power"`
	Input string            `json:"input,omitempty"`
	App   *vizio.RunningApp `json:"app,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.cache.Get("status"); ok {
		s.sendSuccess(w, cached)
		return
	}

	ctx := r.Context()

	power, err := s.client.PowerState(ctx)
	if err != nil {
		s.sendError(w, http.StatusBadGateway, err.Error())
		return
	}

	report := statusReport{Power: power}
	if power {
		// Input and app queries fail on some firmware while the panel is
		// warming up; a partial report is still useful
		if input, err := s.client.CurrentInput(ctx); err == nil {
			report.Input = input
		}
		if app, err := s.client.CurrentApp(ctx); err == nil {
			report.App = app
		}
	}

	s.cache.Put("status", report)
	s.sendSuccess(w, report)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(mux.Vars(r)["name"])
	// Accept the snake_case names the old web remote used
	name = strings.ReplaceAll(name, "_", "-")

	ctx := r.Context()
	s.cache.Invalidate("status")

	var res *vizio.Result
	var err error
	switch name {
	case "power", "toggle":
		res, err = s.client.PowerToggle(ctx)
	case "on", "power-on":
		res, err = s.client.PowerOn(ctx)
	case "off", "power-off":
		res, err = s.client.PowerOff(ctx)
	case "vol-up":
		res, err = s.client.PressKey(ctx, vizio.KeyVolumeUp)
	case "vol-down":
		res, err = s.client.PressKey(ctx, vizio.KeyVolumeDown)
	case "ch-up":
		res, err = s.client.PressKey(ctx, vizio.KeyChannelUp)
	case "ch-down":
		res, err = s.client.PressKey(ctx, vizio.KeyChannelDown)
	default:
		key, ok := vizio.LookupKey(name)
		if !ok {
			s.sendError(w, http.StatusNotFound, fmt.Sprintf("unknown command: %s", name))
			return
		}
		res, err = s.client.PressKey(ctx, key)
	}

	s.sendResult(w, res, err, map[string]string{"command": name})
}

// keyRequest is the raw key probe body
type keyRequest struct {
	Codeset int    `json:"codeset"`
	Code    int    `json:"code"`
	Action  string `json:"action"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	action := vizio.Action(strings.ToUpper(req.Action))
	if req.Action == "" {
		action = vizio.KeyPressAction
	}
	if !action.Valid() {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("invalid key action: %s", req.Action))
		return
	}

	res, err := s.client.SendKey(r.Context(), req.Codeset, req.Code, action)
	if err != nil {
		s.sendError(w, http.StatusBadGateway, err.Error())
		return
	}

	// Raw probes get the full vendor response details for
	// reverse-engineering, success or not
	s.sendSuccess(w, map[string]interface{}{
		"accepted":    res.Success,
		"status_code": res.StatusCode,
		"result":      res.Result,
		"detail":      res.Detail,
	})
}

func (s *Server) handleListInputs(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.cache.Get("inputs"); ok {
		s.sendSuccess(w, cached)
		return
	}

	inputs, err := s.client.ListInputs(r.Context())
	if err != nil {
		s.sendError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.cache.Put("inputs", inputs)
	s.sendSuccess(w, inputs)
}

func (s *Server) handleSelectInput(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	s.cache.Invalidate("status")
	res, err := s.client.SelectInput(r.Context(), name)
	if errors.Is(err, vizio.ErrUnknownInput) {
		s.sendError(w, http.StatusNotFound, err.Error())
		return
	}

	s.sendResult(w, res, err, map[string]string{"input": name})
}

func (s *Server) handleListApps(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.client.Apps().Apps())
}

func (s *Server) handleLaunchApp(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	s.cache.Invalidate("status")
	res, err := s.client.LaunchApp(r.Context(), name)
	if errors.Is(err, vizio.ErrUnknownApp) {
		s.sendError(w, http.StatusNotFound, err.Error())
		return
	}

	s.sendResult(w, res, err, map[string]string{"app": name})
}

func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	if err := s.client.SendChannel(r.Context(), number); err != nil {
		s.sendError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.sendSuccess(w, map[string]string{"channel": number})
}
