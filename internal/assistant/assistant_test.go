package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/conversation"
	"github.com/jonathan/resume-studio/internal/document"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// stubClient satisfies llm.Client without a network.
type stubClient struct {
	reply   string
	err     error
	calls   int
	release chan struct{} // when set, Complete blocks until closed
}

func (c *stubClient) Complete(ctx context.Context, _ string) (string, error) {
	c.calls++
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *stubClient) Close() error { return nil }

func newTestAssistant(t *testing.T, client *stubClient) (*Assistant, *document.Store, *conversation.Log) {
	t.Helper()
	store := document.NewStore(nil)
	log := conversation.NewLog()
	settings, err := config.NewSettingsStore("")
	require.NoError(t, err)

	a := New(Options{
		Store:    store,
		Log:      log,
		Settings: settings,
		NewClient: func(context.Context, *llm.Config) (llm.Client, error) {
			return client, nil
		},
		Logger: zerolog.Nop(),
	})
	return a, store, log
}

func envelope(t *testing.T, data *types.DraftDocument, analysis string, suggestions []string) string {
	t.Helper()
	b, err := json.Marshal(types.OptimizeResult{Data: data, Analysis: analysis, Suggestions: suggestions})
	require.NoError(t, err)
	return string(b)
}

func TestSubmitSuccessReordersSections(t *testing.T) {
	store := document.NewStore(nil)
	snapshot := store.Snapshot()

	wantOrder := []types.Section{
		types.SectionEducation, types.SectionSummary, types.SectionExperience, types.SectionSkills,
	}
	data := &types.DraftDocument{
		PersonalInfo: &snapshot.PersonalInfo,
		SectionOrder: wantOrder,
		Summary:      &snapshot.Summary,
		Experience:   snapshot.Experience,
		Education:    snapshot.Education,
		Skills:       snapshot.Skills,
	}
	client := &stubClient{reply: envelope(t, data, "Reordered.", []string{})}

	a, store, log := newTestAssistant(t, client)
	result, err := a.Submit(context.Background(), "put education first")
	require.NoError(t, err)

	assert.Equal(t, "Reordered.", result.Analysis)
	assert.True(t, result.Updated)
	assert.Equal(t, wantOrder, store.Snapshot().SectionOrder)

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, types.RoleUser, entries[0].Role)
	assert.Equal(t, "put education first", entries[0].Text)
	assert.Equal(t, types.RoleAssistant, entries[1].Role)
	assert.Equal(t, "Reordered.", entries[1].Text)
}

func TestSubmitMalformedResponse(t *testing.T) {
	client := &stubClient{reply: "I can certainly help you improve your resume!"}
	a, store, log := newTestAssistant(t, client)
	before := store.Snapshot()

	_, err := a.Submit(context.Background(), "make it better")
	require.Error(t, err)

	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, types.RoleAssistant, last.Role)
	assert.Equal(t, FailureMessage, last.Text)
	assert.Equal(t, before, store.Snapshot(), "document must not change on failure")
	assert.Equal(t, StateIdle, a.State())
}

func TestSubmitStripsMarkdownFence(t *testing.T) {
	fenced := "```json\n" + `{"analysis":"Looks good.","suggestions":["Add metrics"]}` + "\n```"
	client := &stubClient{reply: fenced}
	a, _, _ := newTestAssistant(t, client)

	result, err := a.Submit(context.Background(), "review my resume")
	require.NoError(t, err)
	assert.Equal(t, "Looks good.", result.Analysis)
	assert.Equal(t, []string{"Add metrics"}, result.Suggestions)
	assert.False(t, result.Updated)
}

func TestSubmitTransportError(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	a, store, log := newTestAssistant(t, client)
	before := store.Snapshot()

	_, err := a.Submit(context.Background(), "make it better")
	require.Error(t, err)

	last, _ := log.Last()
	assert.Equal(t, FailureMessage, last.Text)
	assert.Equal(t, before, store.Snapshot())
}

func TestSubmitBackfillsSectionOrder(t *testing.T) {
	summary := "Polished summary."
	client := &stubClient{reply: envelope(t, &types.DraftDocument{Summary: &summary}, "Done.", nil)}
	a, store, _ := newTestAssistant(t, client)

	require.NoError(t, store.MoveSection(1, document.MoveUp))
	want := store.Snapshot().SectionOrder

	_, err := a.Submit(context.Background(), "polish the summary")
	require.NoError(t, err)
	assert.Equal(t, want, store.Snapshot().SectionOrder)
}

func TestSubmitEmptyInstruction(t *testing.T) {
	a, _, log := newTestAssistant(t, &stubClient{reply: "{}"})
	_, err := a.Submit(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInstruction)
	assert.Equal(t, 0, log.Len())
}

func TestSubmitWhilePendingIsRejected(t *testing.T) {
	client := &stubClient{
		reply:   `{"analysis":"ok"}`,
		release: make(chan struct{}),
	}
	a, _, log := newTestAssistant(t, client)

	done := make(chan error, 1)
	go func() {
		_, err := a.Submit(context.Background(), "first instruction")
		done <- err
	}()

	// Wait until the first request holds the in-flight slot.
	deadline := time.After(2 * time.Second)
	for a.State() != StatePending {
		select {
		case <-deadline:
			t.Fatal("first request never reached Pending")
		case <-time.After(time.Millisecond):
		}
	}

	_, err := a.Submit(context.Background(), "second instruction")
	assert.ErrorIs(t, err, ErrBusy)

	close(client.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, client.calls, "rejected submission must not reach the transport")
	for _, e := range log.Entries() {
		assert.NotEqual(t, "second instruction", e.Text)
	}
	assert.Equal(t, StateIdle, a.State())
}

func TestBuildPromptContents(t *testing.T) {
	doc := types.StarterDocument()
	prompt, err := BuildPrompt(doc, "We need a senior PM with SaaS experience.", "tailor my resume")
	require.NoError(t, err)

	assert.Contains(t, prompt, "Current Resume JSON Data:")
	assert.Contains(t, prompt, doc.PersonalInfo.Name)
	assert.Contains(t, prompt, "User Request: tailor my resume")
	assert.Contains(t, prompt, "We need a senior PM with SaaS experience.")
	assert.Contains(t, prompt, "RESPONSE FORMAT (Strict JSON):")

	// Without a job description the context sentence is absent.
	plain, err := BuildPrompt(doc, "", "tailor my resume")
	require.NoError(t, err)
	assert.NotContains(t, plain, "applying for this job description")
}

func ExampleBuildPrompt() {
	doc := &types.ResumeDocument{SectionOrder: types.DefaultSectionOrder()}
	prompt, _ := BuildPrompt(doc, "", "shorten the summary")
	fmt.Println(len(prompt) > 0)
	// Output: true
}
