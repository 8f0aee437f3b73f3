package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestNewClientValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, "", "engine")
	assert.Error(t, err, "missing API key should fail")

	_, err = NewClient(ctx, "key", "")
	assert.Error(t, err, "missing engine ID should fail")
}

func TestSearch(t *testing.T) {
	var gotQuery, gotCx, gotNum string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCx = r.URL.Query().Get("cx")
		gotNum = r.URL.Query().Get("num")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"title": "Go time package", "link": "https://pkg.go.dev/time", "snippet": "Package time provides functionality for measuring time."},
				{"title": "Go by Example", "link": "https://gobyexample.com/time", "snippet": "Go offers extensive support for times and durations."}
			]
		}`))
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, "test-key", "test-engine", option.WithEndpoint(server.URL))
	require.NoError(t, err)

	results, err := client.Search(ctx, "golang time", 5)
	require.NoError(t, err)

	assert.Equal(t, "golang time", gotQuery)
	assert.Equal(t, "test-engine", gotCx)
	assert.Equal(t, "5", gotNum)

	require.Len(t, results, 2)
	assert.Equal(t, "Go time package", results[0].Title)
	assert.Equal(t, "https://pkg.go.dev/time", results[0].Link)
	assert.Equal(t, "Package time provides functionality for measuring time.", results[0].Snippet)
}

func TestSearchCapsResultCount(t *testing.T) {
	var gotNum string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotNum = r.URL.Query().Get("num")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, "test-key", "test-engine", option.WithEndpoint(server.URL))
	require.NoError(t, err)

	_, err = client.Search(ctx, "anything", 50)
	require.NoError(t, err)
	assert.Equal(t, "10", gotNum)
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, "test-key", "test-engine", option.WithEndpoint(server.URL))
	require.NoError(t, err)

	results, err := client.Search(ctx, "anything", 5)
	assert.Error(t, err)
	assert.Empty(t, results)
}

func TestFormat(t *testing.T) {
	t.Run("empty results", func(t *testing.T) {
		assert.Equal(t, NoResultsMessage, Format(nil))
	})

	t.Run("numbered results", func(t *testing.T) {
		got := Format([]Result{
			{Title: "First", Link: "https://a.example", Snippet: "Snippet one"},
			{Title: "Second", Link: "https://b.example", Snippet: "Snippet two"},
		})

		assert.True(t, strings.HasPrefix(got, "Search Results:\n\n"))
		assert.Contains(t, got, "1. First\n   URL: https://a.example\n   Snippet one\n")
		assert.Contains(t, got, "2. Second\n   URL: https://b.example\n   Snippet two\n")
	})
}

func TestSearchAndFormatDegradesOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, "test-key", "test-engine", option.WithEndpoint(server.URL))
	require.NoError(t, err)

	got, err := client.SearchAndFormat(ctx, "anything", 3)
	assert.Error(t, err)
	assert.Equal(t, NoResultsMessage, got)
}
