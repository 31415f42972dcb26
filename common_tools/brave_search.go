// Package common_tools holds the web search collaborator used by the tool-specific answerer.
package common_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Desarso/toolguide/models"
)

const braveSearchURL = "https://api.search.brave.com/res/v1/web/search"

// braveMaxCount is the largest page the API returns.
const braveMaxCount = 20

// httpDo is a package-level var so tests can mock it.
var httpDo = http.DefaultClient.Do

// BraveSearcher searches the web through the Brave Search API.
type BraveSearcher struct {
	APIKey string
	// Country biases results, e.g. "TR". Empty lets the API decide.
	Country string
}

func NewBraveSearcher(apiKey string) *BraveSearcher {
	return &BraveSearcher{APIKey: apiKey}
}

// WithCountry sets the result country
func (b *BraveSearcher) WithCountry(country string) *BraveSearcher {
	b.Country = country
	return b
}

// Search returns at most limit hits, web results first then news.
func (b *BraveSearcher) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if b.APIKey == "" {
		return nil, fmt.Errorf("BRAVE_API_KEY is not set")
	}
	if limit <= 0 || limit > braveMaxCount {
		limit = braveMaxCount
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, braveSearchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	q := req.URL.Query()
	q.Add("q", query)
	q.Add("count", strconv.Itoa(limit))
	if b.Country != "" {
		q.Add("country", b.Country)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.APIKey)

	resp, err := httpDo(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to Brave Search API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Brave Search API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var data SimplifiedResultData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("error unmarshalling Brave Search API response: %w", err)
	}
	return ToSearchResults(data, limit), nil
}

// ToSearchResults flattens a response into hits with the highlighting markup removed.
func ToSearchResults(data SimplifiedResultData, limit int) []models.SearchResult {
	var out []models.SearchResult
	add := func(title, description, url string) {
		if limit > 0 && len(out) >= limit {
			return
		}
		out = append(out, models.SearchResult{
			Title:   stripStrongTags(title),
			Summary: stripStrongTags(description),
			URL:     url,
		})
	}
	for _, r := range data.Web.Results {
		add(r.Title, r.Description, r.URL)
	}
	for _, r := range data.News.Results {
		add(r.Title, r.Description, r.URL)
	}
	return out
}

// stripStrongTags removes specific known HTML tags from strings
func stripStrongTags(s string) string {
	s = strings.ReplaceAll(s, "<strong>", "")
	s = strings.ReplaceAll(s, "</strong>", "")
	return s
}
