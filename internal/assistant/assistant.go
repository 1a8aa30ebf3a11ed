// Package assistant implements the optimization request/response protocol:
// one in-flight model call at a time, prompt assembly from the live
// document, response parsing, and reconciliation back into session state.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/conversation"
	"github.com/jonathan/resume-studio/internal/document"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// State of the protocol. Fulfilled and Failed are transient: the assistant
// returns to Idle as soon as the outcome is logged, so only these two states
// are observable.
type State string

// Observable states.
const (
	StateIdle    State = "idle"
	StatePending State = "pending"
)

// Submission errors.
var (
	// ErrBusy is returned when an instruction arrives while a request is
	// already in flight. Submissions are rejected, not queued.
	ErrBusy = errors.New("an optimization request is already in flight")
	// ErrEmptyInstruction is returned for blank instructions.
	ErrEmptyInstruction = errors.New("instruction is empty")
)

// FailureMessage is the fixed user-facing text appended to the conversation
// whenever a model call fails, whatever the cause.
const FailureMessage = "Sorry, something went wrong talking to the language model service. " +
	"Please check the API credential and endpoint URL."

// ClientFactory builds a model client for the current settings. Swappable in
// tests.
type ClientFactory func(ctx context.Context, cfg *llm.Config) (llm.Client, error)

// Options configures a new Assistant.
type Options struct {
	Store    *document.Store
	Log      *conversation.Log
	Settings *config.SettingsStore
	Provider llm.Provider // defaults to ProviderOpenAI
	// NewClient defaults to llm.NewClient.
	NewClient ClientFactory
	Logger    zerolog.Logger
}

// Result is what a fulfilled request hands back to the caller. Analysis is
// also appended to the conversation; Suggestions are display-only.
type Result struct {
	Analysis    string   `json:"analysis,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Updated     bool     `json:"updated"`
}

// Assistant runs the protocol against one document store and one
// conversation log.
type Assistant struct {
	store     *document.Store
	log       *conversation.Log
	settings  *config.SettingsStore
	provider  llm.Provider
	newClient ClientFactory
	logger    zerolog.Logger

	mu      sync.Mutex
	pending bool

	jobMu          sync.RWMutex
	jobDescription string
}

// New creates an assistant. Store, Log and Settings are required.
func New(opts Options) *Assistant {
	a := &Assistant{
		store:     opts.Store,
		log:       opts.Log,
		settings:  opts.Settings,
		provider:  opts.Provider,
		newClient: opts.NewClient,
		logger:    opts.Logger,
	}
	if a.provider == "" {
		a.provider = llm.ProviderOpenAI
	}
	if a.newClient == nil {
		a.newClient = llm.NewClient
	}
	return a
}

// State reports whether a request is in flight.
func (a *Assistant) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending {
		return StatePending
	}
	return StateIdle
}

// SetJobDescription sets (or, with empty text, clears) the target-job
// context folded into every prompt.
func (a *Assistant) SetJobDescription(text string) {
	a.jobMu.Lock()
	defer a.jobMu.Unlock()
	a.jobDescription = strings.TrimSpace(text)
}

// JobDescription returns the current target-job context.
func (a *Assistant) JobDescription() string {
	a.jobMu.RLock()
	defer a.jobMu.RUnlock()
	return a.jobDescription
}

// Submit runs one instruction through the protocol. The instruction is
// logged as a user entry the moment the request is accepted. On success the
// document is replaced wholesale and the analysis is logged; on any
// transport or parse failure the fixed failure message is logged and the
// document stays untouched. The returned error describes the failure for
// the caller; the conversation log already carries the user-facing outcome.
func (a *Assistant) Submit(ctx context.Context, instruction string) (*Result, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, ErrEmptyInstruction
	}

	if err := a.acquire(); err != nil {
		return nil, err
	}
	defer a.release()

	a.log.Append(types.RoleUser, instruction)
	snapshot := a.store.Snapshot()

	prompt, err := BuildPrompt(snapshot, a.JobDescription(), instruction)
	if err != nil {
		return nil, a.fail("building prompt", err)
	}

	result, err := a.call(ctx, prompt)
	if err != nil {
		return nil, a.fail("model call", err)
	}

	if result.Analysis != "" {
		a.log.Append(types.RoleAssistant, result.Analysis)
	}

	updated := false
	if result.Data != nil {
		// Backfill from the pre-request snapshot so a reply that omits
		// sectionOrder cannot reset the user's ordering.
		if len(result.Data.SectionOrder) == 0 {
			result.Data.SectionOrder = snapshot.SectionOrder
		}
		a.store.Replace(result.Data)
		updated = true
	}

	a.logger.Info().
		Bool("updated", updated).
		Int("suggestions", len(result.Suggestions)).
		Msg("optimization fulfilled")

	return &Result{
		Analysis:    result.Analysis,
		Suggestions: result.Suggestions,
		Updated:     updated,
	}, nil
}

// call performs the transport round trip and parses the reply envelope.
func (a *Assistant) call(ctx context.Context, prompt string) (*types.OptimizeResult, error) {
	settings := a.settings.Get()
	cfg := llm.DefaultConfig()
	cfg.Provider = a.provider
	cfg.Endpoint = settings.EndpointURL
	cfg.Credential = settings.Credential
	cfg.Model = settings.Model

	client, err := a.newClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	raw, err := client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	clean := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateOptimizeResult(clean); err != nil {
		return nil, fmt.Errorf("response failed validation: %w", err)
	}

	var result types.OptimizeResult
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &result, nil
}

// fail logs the failure, appends the fixed message, and wraps the cause.
// The document is never mutated on this path.
func (a *Assistant) fail(stage string, err error) error {
	a.logger.Warn().Err(err).Str("stage", stage).Msg("optimization failed")
	a.log.Append(types.RoleAssistant, FailureMessage)
	return fmt.Errorf("%s: %w", stage, err)
}

func (a *Assistant) acquire() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending {
		return ErrBusy
	}
	a.pending = true
	return nil
}

func (a *Assistant) release() {
	a.mu.Lock()
	a.pending = false
	a.mu.Unlock()
}
