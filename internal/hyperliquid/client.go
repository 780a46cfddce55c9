// Package hyperliquid fetches account state from the Hyperliquid info API.
package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultEndpoint is the public Hyperliquid info API.
const DefaultEndpoint = "https://api.hyperliquid.xyz/info"

type clearinghouseRequest struct {
	Type string `json:"type"`
	User string `json:"user"`
}

// Position is one open perp position. All numeric fields arrive as
// string-encoded decimals; liquidationPx is null for positions that
// cannot be liquidated, which decodes to the empty string.
type Position struct {
	Coin           string `json:"coin"`
	Szi            string `json:"szi"`
	EntryPx        string `json:"entryPx"`
	PositionValue  string `json:"positionValue"`
	UnrealizedPnl  string `json:"unrealizedPnl"`
	ReturnOnEquity string `json:"returnOnEquity"`
	LiquidationPx  string `json:"liquidationPx"`
	MarginUsed     string `json:"marginUsed"`
	MaxLeverage    int    `json:"maxLeverage"`
	Leverage       struct {
		Type  string `json:"type"`
		Value int    `json:"value"`
	} `json:"leverage"`
}

// AssetPosition wraps a position with its type tag as returned by the API.
type AssetPosition struct {
	Type     string   `json:"type"`
	Position Position `json:"position"`
}

type clearinghouseState struct {
	AssetPositions []AssetPosition `json:"assetPositions"`
}

// Client queries the Hyperliquid info API
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a client for the given info API endpoint. An empty
// endpoint falls back to the public API.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
	}
}

// FetchPositions returns the open positions for a wallet address. Any
// transport or API failure is logged and reported as zero positions, so
// one failing wallet never aborts a multi-wallet query. No retries.
func (c *Client) FetchPositions(ctx context.Context, address string) []AssetPosition {
	positions, err := c.fetch(ctx, address)
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("Failed to fetch positions")
		return nil
	}
	return positions
}

func (c *Client) fetch(ctx context.Context, address string) ([]AssetPosition, error) {
	body, err := json.Marshal(clearinghouseRequest{Type: "clearinghouseState", User: address})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post clearinghouseState: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hyperliquid API status %d", resp.StatusCode)
	}

	var state clearinghouseState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode clearinghouseState: %w", err)
	}

	return state.AssetPositions, nil
}
