// Package config provides the AI endpoint settings: the user-supplied
// endpoint URL, credential and model identifier, with built-in defaults and
// simple file persistence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Built-in placeholder defaults, substituted for any unset field.
const (
	DefaultEndpointURL = "https://api.siliconflow.cn/v1/chat/completions"
	DefaultModel       = "deepseek-ai/DeepSeek-V3.2"
	DefaultCredential  = "sk-replace-with-your-own-key"
)

// Settings is the user-editable AI endpoint triple.
type Settings struct {
	EndpointURL string `json:"endpoint_url" validate:"required"`
	Credential  string `json:"credential" validate:"required"`
	Model       string `json:"model" validate:"required"`
}

// Validate checks the non-empty-string shape of the triple. Nothing beyond
// shape is checked; a wrong endpoint surfaces as a failed assistant call.
func (s *Settings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// persisted is the on-disk shape. The key names predate this service (they
// were the browser localStorage keys) and are kept for drop-in migration.
type persisted struct {
	EndpointURL string `json:"resume_api_url,omitempty"`
	Credential  string `json:"resume_api_key,omitempty"`
	Model       string `json:"resume_model_name,omitempty"`
}

// SettingsStore holds the current triple in memory and mirrors it to a JSON
// file when a path is configured. An empty field means "unset"; Get
// substitutes the built-in default for it.
type SettingsStore struct {
	mu      sync.RWMutex
	path    string
	current Settings
}

// NewSettingsStore creates a store backed by the file at path. A missing
// file is not an error (first run); an empty path disables persistence.
func NewSettingsStore(path string) (*SettingsStore, error) {
	st := &SettingsStore{path: path}
	if path == "" {
		return st, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	st.current = Settings{EndpointURL: p.EndpointURL, Credential: p.Credential, Model: p.Model}
	return st, nil
}

// Get returns the current settings with defaults substituted for any unset
// field.
func (st *SettingsStore) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s := st.current
	if s.EndpointURL == "" {
		s.EndpointURL = DefaultEndpointURL
	}
	if s.Credential == "" {
		s.Credential = DefaultCredential
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	return s
}

// Set validates and stores the triple, then persists it when a path is
// configured.
func (st *SettingsStore) Set(s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = s

	if st.path == "" {
		return nil
	}
	return st.persist()
}

// persist writes the current triple to disk. Caller holds the lock.
func (st *SettingsStore) persist() error {
	if dir := filepath.Dir(st.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	p := persisted{
		EndpointURL: st.current.EndpointURL,
		Credential:  st.current.Credential,
		Model:       st.current.Model,
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", st.path, err)
	}
	return nil
}
