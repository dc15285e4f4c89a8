package steamapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
	"github.com/arklim/steam-friend-adder/internal/core/port"
	"github.com/arklim/steam-friend-adder/internal/repository"
)

const (
	playerSummariesPath = "ISteamUser/GetPlayerSummaries/v2"
	friendListPath      = "ISteamUser/GetFriendList/v1"
)

// Config carries the Steam Web API connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client performs the two Steam Web API lookups. Every outbound call passes
// through the admitter first.
type Client struct {
	httpClient *http.Client
	limiter    port.Admitter
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient constructs a Client with a fixed per-request timeout.
func NewClient(cfg Config, limiter port.Admitter, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

type playerSummariesBody struct {
	Response *struct {
		Players *[]struct {
			SteamID     string `json:"steamid"`
			PersonaName string `json:"personaname"`
			ProfileURL  string `json:"profileurl"`
		} `json:"players"`
	} `json:"response"`
}

// GetPlayerSummaries resolves one SteamID through the player summaries
// endpoint. An empty result with a nil error means the id does not exist.
// This endpoint reports auth failures as 403.
func (c *Client) GetPlayerSummaries(ctx context.Context, id domain.SteamID) ([]domain.PlayerSummary, error) {
	params := url.Values{
		"key":      {c.apiKey},
		"steamids": {id.String()},
	}

	resp, err := c.get(ctx, playerSummariesPath, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return nil, repository.ErrAuth
	case http.StatusTooManyRequests:
		return nil, repository.ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: status code %d", repository.ErrUnexpectedResponse, resp.StatusCode)
	}

	var body playerSummariesBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: malformed response body", repository.ErrUnexpectedResponse)
	}
	if body.Response == nil || body.Response.Players == nil {
		return nil, fmt.Errorf("%w: malformed response body", repository.ErrUnexpectedResponse)
	}

	players := make([]domain.PlayerSummary, 0, len(*body.Response.Players))
	for _, p := range *body.Response.Players {
		players = append(players, domain.PlayerSummary{
			SteamID:     domain.SteamID(p.SteamID),
			PersonaName: p.PersonaName,
			ProfileURL:  p.ProfileURL,
		})
	}

	return players, nil
}

type friendListBody struct {
	FriendsList *struct {
		Friends *[]struct {
			SteamID      string `json:"steamid"`
			Relationship string `json:"relationship"`
		} `json:"friends"`
	} `json:"friendslist"`
}

// GetFriendList returns the owner's friend SteamIDs in API order. Unlike the
// player summaries endpoint, this one reports auth failures as 401 and uses
// 403 for a private or missing profile. The asymmetry is the upstream API's,
// preserved as-is.
func (c *Client) GetFriendList(ctx context.Context, owner domain.SteamID) ([]domain.SteamID, error) {
	params := url.Values{
		"key":          {c.apiKey},
		"steamid":      {owner.String()},
		"relationship": {"friend"},
	}

	resp, err := c.get(ctx, friendListPath, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, repository.ErrAuth
	case http.StatusForbidden:
		return nil, repository.ErrPrivateOrNotFound
	case http.StatusTooManyRequests:
		return nil, repository.ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: status code %d", repository.ErrUnexpectedResponse, resp.StatusCode)
	}

	var body friendListBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: malformed response body", repository.ErrUnexpectedResponse)
	}
	if body.FriendsList == nil || body.FriendsList.Friends == nil {
		return nil, fmt.Errorf("%w: no friends found or malformed response body", repository.ErrUnexpectedResponse)
	}

	friends := make([]domain.SteamID, 0, len(*body.FriendsList.Friends))
	for _, f := range *body.FriendsList.Friends {
		friends = append(friends, domain.SteamID(f.SteamID))
	}

	return friends, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	if err := c.limiter.Admit(ctx); err != nil {
		return nil, fmt.Errorf("admit request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: request timeout", repository.ErrNetwork)
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrNetwork, err)
	}

	return resp, nil
}

var _ port.SteamClient = (*Client)(nil)
