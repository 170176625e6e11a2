package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type client struct {
	host string

	c *http.Client
}

// NewClient returns client with http.DefaultClient.
func NewClient(host string) Resume {
	return NewClientWithHTTPClient(host, &http.Client{})
}

// NewClientWithHTTPClient returns client with provided http.Client.
func NewClientWithHTTPClient(host string, c *http.Client) Resume {
	return &client{
		host: host,
		c:    c,
	}
}

// GetProfile returns profile by wallet.
// GetProfile can return ErrInvalidRequest and ErrNotFound besides general api package's errors.
func (c *client) GetProfile(ctx context.Context, wallet string) (*Profile, error) {
	if wallet == "" {
		return nil, ErrInvalidRequest
	}

	var resp Profile
	if err := c.sendRequest(ctx, http.MethodGet, endpoint(ProfileEndpoint, wallet, nil), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to make GetProfile request: %w", err)
	}

	return &resp, nil
}

// SaveProfile creates or overwrites profile.
// SaveProfile can return ErrInvalidRequest besides general api package's errors.
func (c *client) SaveProfile(ctx context.Context, r SaveProfileRequest) error {
	if r.Wallet == "" {
		return ErrInvalidRequest
	}

	var resp MessageResponse
	if err := c.sendRequest(ctx, http.MethodPost, ProfileEndpoint, &r, &resp); err != nil {
		return fmt.Errorf("failed to make SaveProfile request: %w", err)
	}

	return nil
}

// RecordView counts viewer's visit of profile.
// RecordView can return ErrInvalidRequest besides general api package's errors.
func (c *client) RecordView(ctx context.Context, wallet, viewerWallet string) (*RecordViewResponse, error) {
	if wallet == "" || viewerWallet == "" {
		return nil, ErrInvalidRequest
	}

	var resp RecordViewResponse
	if err := c.sendRequest(ctx, http.MethodPost,
		endpoint(ViewsEndpoint, wallet, url.Values{"viewerWallet": {viewerWallet}}), nil, &resp,
	); err != nil {
		return nil, fmt.Errorf("failed to make RecordView request: %w", err)
	}

	return &resp, nil
}

// GetViewStats returns profile's views statistics.
// GetViewStats can return ErrInvalidRequest besides general api package's errors.
func (c *client) GetViewStats(ctx context.Context, wallet string) (*ViewStatsResponse, error) {
	if wallet == "" {
		return nil, ErrInvalidRequest
	}

	var resp ViewStatsResponse
	if err := c.sendRequest(ctx, http.MethodGet, endpoint(ViewsEndpoint, wallet, nil), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to make GetViewStats request: %w", err)
	}

	return &resp, nil
}

// GetRewards returns profile's milestones.
// GetRewards can return ErrInvalidRequest besides general api package's errors.
func (c *client) GetRewards(ctx context.Context, wallet string) (*RewardsResponse, error) {
	if wallet == "" {
		return nil, ErrInvalidRequest
	}

	var resp RewardsResponse
	if err := c.sendRequest(ctx, http.MethodGet, endpoint(RewardsEndpoint, wallet, nil), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to make GetRewards request: %w", err)
	}

	return &resp, nil
}

// ListNFTs returns NFTs owned by wallet.
// ListNFTs can return ErrInvalidRequest besides general api package's errors.
func (c *client) ListNFTs(ctx context.Context, wallet string) ([]NFT, error) {
	if wallet == "" {
		return nil, ErrInvalidRequest
	}

	var resp NFTsResponse
	if err := c.sendRequest(ctx, http.MethodGet, endpoint(NFTsEndpoint, wallet, nil), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to make ListNFTs request: %w", err)
	}

	return resp.NFTs, nil
}

func endpoint(path, wallet string, q url.Values) string {
	if q == nil {
		q = url.Values{}
	}
	q.Set("wallet", wallet)

	return fmt.Sprintf("%s?%s", path, q.Encode())
}

// sendRequest is utility method which sends request to Resume.
// Also converts http.StatusCode to package's errors.
func (c *client) sendRequest(ctx context.Context, method string, endpoint string, data interface{}, resp interface{}) error {
	var body io.Reader = http.NoBody
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	r, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/%s", c.host, endpoint), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	rr, err := c.c.Do(r)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer rr.Body.Close() // nolint

	if rr.StatusCode < 200 || rr.StatusCode >= 300 {
		switch rr.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusBadRequest:
			return ErrInvalidRequest
		default:
			var e Error
			if err := json.NewDecoder(rr.Body).Decode(&e); err != nil {
				return fmt.Errorf("request failed with status %d", rr.StatusCode)
			}
			return fmt.Errorf("request failed: %s", e.Error)
		}
	}

	if err := json.NewDecoder(rr.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
