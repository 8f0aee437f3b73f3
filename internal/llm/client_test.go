package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, handler func(req completionRequest) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/completions", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := completionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Text string `json:"text"`
		}{Text: handler(req)})

		json.NewEncoder(w).Encode(resp)
	}))
}

func TestComplete(t *testing.T) {
	server := completionServer(t, func(req completionRequest) string {
		return "Generated reply."
	})
	defer server.Close()

	client, err := NewClient(server.URL, Options{Model: "test-model"})
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), "Say something")
	require.NoError(t, err)
	assert.Equal(t, "Generated reply.", out)
}

func TestCompleteStripsPromptEcho(t *testing.T) {
	server := completionServer(t, func(req completionRequest) string {
		// Completion backends often return the prompt followed by the
		// generated continuation.
		return req.Prompt + "\n\nGenerated reply."
	})
	defer server.Close()

	client, err := NewClient(server.URL, Options{})
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), "Say something")
	require.NoError(t, err)
	assert.Equal(t, "Generated reply.", out)
}

func TestCompleteSendsOptions(t *testing.T) {
	var got completionRequest
	server := completionServer(t, func(req completionRequest) string {
		got = req
		return "ok"
	})
	defer server.Close()

	client, err := NewClient(server.URL, Options{
		Model:       "phi-3-mini-4k-instruct",
		MaxTokens:   256,
		Temperature: 0.2,
	})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "phi-3-mini-4k-instruct", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	assert.InDelta(t, 0.2, got.Temperature, 0.001)
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, Options{})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, Options{})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := NewClient("", Options{})
	assert.Error(t, err)
}

func TestClassifyPromptCarriesEmail(t *testing.T) {
	var gotPrompt string
	server := completionServer(t, func(req completionRequest) string {
		gotPrompt = req.Prompt
		return "Meeting Request - the sender asks to schedule a call."
	})
	defer server.Close()

	client, err := NewClient(server.URL, Options{})
	require.NoError(t, err)

	out, err := client.Classify(context.Background(), "Can we meet tomorrow at 10?")
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, "Can we meet tomorrow at 10?")
	assert.Contains(t, gotPrompt, "Meeting Request")
	assert.True(t, strings.Contains(out, CategoryMeetingRequest))
}

func TestExtractMeeting(t *testing.T) {
	server := completionServer(t, func(req completionRequest) string {
		return "Date: 2025-03-12\nTime: 10:00\nDuration: 30\nTitle: Sync\nParticipants: alice@example.com\nLocation: Room 4"
	})
	defer server.Close()

	client, err := NewClient(server.URL, Options{})
	require.NoError(t, err)

	details, err := client.ExtractMeeting(context.Background(), "Let's sync Wednesday")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-12", details.Date)
	assert.Equal(t, "10:00", details.Time)
	assert.Equal(t, "Sync", details.Title)
	assert.True(t, details.Complete())
}

func TestDraftContextSection(t *testing.T) {
	var gotPrompt string
	server := completionServer(t, func(req completionRequest) string {
		gotPrompt = req.Prompt
		return "Dear Alice, ..."
	})
	defer server.Close()

	client, err := NewClient(server.URL, Options{})
	require.NoError(t, err)

	_, err = client.Draft(context.Background(), "What is the deadline?", "alice@example.com", "")
	require.NoError(t, err)
	assert.Contains(t, gotPrompt, "No additional context provided.")

	_, err = client.Draft(context.Background(), "What is the deadline?", "alice@example.com", "Search Results: ...")
	require.NoError(t, err)
	assert.Contains(t, gotPrompt, "Additional context: Search Results: ...")
}
