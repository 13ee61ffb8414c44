package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mww/dreamsquad/model"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	apiKeyHeader   = "X-Auth-Token"
	defaultTimeout = 1 * time.Minute
)

// Client reads the external player and score feeds. Every error it returns is
// of kind model.KindDependency.
type Client interface {
	LoadPlayers(ctx context.Context) ([]model.Player, error)
	LoadScores(ctx context.Context) (*Scores, error)
}

// Scores are the points each player earned on a matchday keyed by external id.
type Scores struct {
	Matchday int
	Points   map[string]int
}

type Config struct {
	URL    string
	APIKey string

	// When ClientID is set the client authenticates with OAuth2 client
	// credentials against TokenURL instead of sending the API key.
	ClientID     string
	ClientSecret string
	TokenURL     string

	Timeout time.Duration
}

type client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func New(cfg Config) (Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("feed url must be provided")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	if cfg.ClientID != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		// The token source refreshes on its own for the life of the client.
		c.httpClient = cc.Client(context.Background())
		c.httpClient.Timeout = timeout
		c.apiKey = ""
	}
	return c, nil
}

func (c *client) LoadPlayers(ctx context.Context) ([]model.Player, error) {
	var parsed playersResponse
	if err := c.get(ctx, "/v1/players", &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Player, 0, len(parsed.Players))
	skipped := 0
	for _, p := range parsed.Players {
		player, ok := p.toPlayer()
		if !ok {
			skipped++
			continue
		}
		result = append(result, *player)
	}

	if skipped > 0 {
		slog.Warn("skipped malformed feed player records", "skipped", skipped, "loaded", len(result))
	}
	return result, nil
}

func (c *client) LoadScores(ctx context.Context) (*Scores, error) {
	var parsed scoresResponse
	if err := c.get(ctx, "/v1/scores", &parsed); err != nil {
		return nil, err
	}

	scores := &Scores{
		Matchday: parsed.Matchday,
		Points:   make(map[string]int, len(parsed.Scores)),
	}
	for _, s := range parsed.Scores {
		if s.ID == "" {
			continue
		}
		scores.Points[s.ID] += s.Points
	}
	return scores, nil
}

func (c *client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return model.DependencyError(fmt.Errorf("error creating http request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.DependencyError(fmt.Errorf("error sending http request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.DependencyError(fmt.Errorf("unexpected status code from %s: %d", path, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return model.DependencyError(fmt.Errorf("error parsing response from feed: %w", err))
	}
	return nil
}
