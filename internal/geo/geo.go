// Package geo resolves the machine's position from a configurable HTTP
// source, used to pre-fill pass coordinates. A convenience, not a
// correctness-critical path: every value it produces can be overridden by
// hand.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Position is a resolved location. Altitude is frequently missing from
// position sources; HasHeight says whether Height carries a real value.
type Position struct {
	Latitude  float64
	Longitude float64
	Height    int
	HasHeight bool
}

// IsAvailable checks if the position source is reachable
func IsAvailable(url string) bool {
	if url == "" {
		return false
	}

	client := &http.Client{
		Timeout: 2 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Lookup queries the position source. The source is expected to answer with
// a JSON object carrying latitude/longitude and, optionally, altitude in
// meters.
func Lookup(ctx context.Context, url string) (*Position, error) {
	if url == "" {
		return nil, fmt.Errorf("no position source configured (set geo.url)")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("position source unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("position source returned %d", resp.StatusCode)
	}

	var body struct {
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		Altitude  *float64 `json:"altitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse position response: %w", err)
	}

	pos := &Position{
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	}
	if body.Altitude != nil {
		pos.Height = int(*body.Altitude)
		pos.HasHeight = true
	}
	return pos, nil
}
