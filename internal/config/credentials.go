// Package config persists the TV pairing credentials. The client never
// touches this file itself; callers load credentials at startup and hand
// them to the client explicitly.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials are the sole unit of durable state: created by pairing, read
// on every invocation, replaced wholesale by re-pairing.
type Credentials struct {
	IP        string `json:"ip"`
	AuthToken string `json:"auth_token"`
	MAC       string `json:"mac,omitempty"`
}

// Paired reports whether the credentials can authenticate requests
func (c *Credentials) Paired() bool {
	return c != nil && c.IP != "" && c.AuthToken != ""
}

// Store reads and writes the credentials file
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the credentials under the user's config directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vizctl.json"
	}
	return filepath.Join(home, ".config", "vizctl", "credentials.json")
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the credentials. A missing file is not an error: it yields
// empty credentials, which forces the pairing flow.
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Credentials{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return &creds, nil
}

// Save overwrites the credentials file. Re-pairing replaces everything;
// nothing is merged with prior contents.
func (s *Store) Save(creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// The auth token grants full control of the TV
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}
