package search

import (
	"context"
	"fmt"
	"strings"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// MaxResults is the result count cap imposed by the Custom Search API.
const MaxResults = 10

// NoResultsMessage is the formatted output when a search returns nothing.
const NoResultsMessage = "No search results found."

// Result is a single search hit reduced to the fields a prompt needs.
type Result struct {
	Title   string
	Link    string
	Snippet string
}

// Client wraps the Custom Search service for a single engine.
type Client struct {
	svc      *customsearch.Service
	engineID string
}

// NewClient creates a search client authenticated by API key against the
// given custom search engine. Extra options are applied after the key,
// which lets tests point the client at a local server.
func NewClient(ctx context.Context, apiKey, engineID string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("search API key is required")
	}
	if engineID == "" {
		return nil, fmt.Errorf("search engine ID is required")
	}

	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &Client{
		svc:      svc,
		engineID: engineID,
	}, nil
}

// Search performs a web search and returns up to numResults hits.
func (c *Client) Search(ctx context.Context, query string, numResults int64) ([]Result, error) {
	if numResults <= 0 {
		numResults = 5
	}
	if numResults > MaxResults {
		numResults = MaxResults
	}

	res, err := c.svc.Cse.List().
		Cx(c.engineID).
		Q(query).
		Num(numResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var results []Result
	for _, item := range res.Items {
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}

	return results, nil
}

// Format renders results as a numbered block for prompt grounding.
func Format(results []Result) string {
	if len(results) == 0 {
		return NoResultsMessage
	}

	var b strings.Builder
	b.WriteString("Search Results:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "   URL: %s\n", r.Link)
		fmt.Fprintf(&b, "   %s\n\n", r.Snippet)
	}
	return b.String()
}

// SearchAndFormat performs a search and renders the results in one step.
// Failures surface as an error alongside the no-results text so callers
// can log and continue without grounding.
func (c *Client) SearchAndFormat(ctx context.Context, query string, numResults int64) (string, error) {
	results, err := c.Search(ctx, query, numResults)
	if err != nil {
		return NoResultsMessage, err
	}
	return Format(results), nil
}
