package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"bitbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Brave provides a wrapper for the Brave web search API.
type Brave struct {
	endpoint      string
	apiKey        string
	maxResults    int
	excerptLength int
}

func NewBrave(endpoint, apiKey string, maxResults, excerptLength int) *Brave {
	return &Brave{
		endpoint:      endpoint,
		apiKey:        apiKey,
		maxResults:    maxResults,
		excerptLength: excerptLength,
	}
}

type searchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (b *Brave) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	requestURL := fmt.Sprintf("%s?q=%s&count=%s",
		b.endpoint, url.QueryEscape(query), strconv.Itoa(b.maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating search request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from search API: %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading search response: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling search response: %w", err)
	}

	log.Debug().Str("query", query).Int("results", len(result.Web.Results)).Msg("search finished")

	results := make([]domain.SearchResult, 0, len(result.Web.Results))
	for _, r := range result.Web.Results {
		results = append(results, domain.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Excerpt: truncateExcerpt(r.Description, b.excerptLength),
		})

		if len(results) == b.maxResults {
			break
		}
	}

	return results, nil
}

func truncateExcerpt(s string, limit int) string {
	if limit <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + "…"
}
