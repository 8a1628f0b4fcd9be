package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"EmojiFM/config"
	"EmojiFM/logger"
	"EmojiFM/model"
)

// Client talks to the Spotify Web API using the client-credentials grant.
// It holds a single cached access token; see token.go.
type Client struct {
	authURL       string
	apiURL        string
	clientID      string
	clientSecret  string
	defaultMarket string
	httpClient    *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates a Spotify client from the application configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		authURL:       cfg.SpotifyAuthURL,
		apiURL:        cfg.SpotifyAPIURL,
		clientID:      cfg.SpotifyClientID,
		clientSecret:  cfg.SpotifyClientSecret,
		defaultMarket: cfg.SpotifyMarket,
		httpClient: &http.Client{
			Timeout: cfg.SpotifyTimeout,
		},
	}
}

// Search queries the catalog and maps track results into songs, each
// tagged with genreHint so the caller can attribute them to moods.
//
// Search never fails from its caller's point of view: token errors,
// transport errors, non-2xx responses and malformed bodies are all
// logged here and collapsed into an empty list, which the recommendation
// engine treats the same as "no matches".
func (c *Client) Search(ctx context.Context, query, itemType string, limit int, market, genreHint string) []model.Song {
	songs, err := c.search(ctx, query, itemType, limit, market, genreHint)
	if err != nil {
		logger.Warn("spotify search failed, returning empty result",
			logger.String("query", query),
			logger.String("genre", genreHint),
			logger.ErrorField(err))
		return []model.Song{}
	}
	return songs
}

func (c *Client) search(ctx context.Context, query, itemType string, limit int, market, genreHint string) ([]model.Song, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	if market == "" {
		market = c.defaultMarket
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", itemType)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("market", market)

	searchURL := fmt.Sprintf("%s/search?%s", c.apiURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var result struct {
		Tracks struct {
			Items []struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				Artists []struct {
					Name string `json:"name"`
				} `json:"artists"`
				ExternalURLs struct {
					Spotify string `json:"spotify"`
				} `json:"external_urls"`
				PreviewURL string `json:"preview_url"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	// Only track results are mapped; other item types are not used.
	if itemType != "track" {
		return []model.Song{}, nil
	}

	songs := make([]model.Song, 0, len(result.Tracks.Items))
	for _, item := range result.Tracks.Items {
		artist := ""
		if len(item.Artists) > 0 {
			artist = item.Artists[0].Name
		}

		// Upstream sometimes reports the preview as the literal string
		// "null"; normalize that to empty alongside the absent case.
		preview := item.PreviewURL
		if preview == "null" {
			preview = ""
		}

		songs = append(songs, model.Song{
			ID:          item.ID,
			Name:        item.Name,
			Artist:      artist,
			SpotifyURL:  item.ExternalURLs.Spotify,
			PreviewURL:  preview,
			SourceGenre: genreHint,
		})
	}
	return songs, nil
}
