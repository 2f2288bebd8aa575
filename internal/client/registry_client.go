package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tracking-service/internal/config"
)

// AssetStatus is what the external asset registry reports for one asset.
type AssetStatus struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

type assetStatusResponse struct {
	Data AssetStatus `json:"data"`
}

// RegistryClient talks to the asset-registry collaborator that owns
// asset lifecycle. The tracking core only ever asks it whether an asset
// exists and is active.
type RegistryClient struct {
	baseURL       string
	internalToken string
	httpClient    *http.Client
}

func NewRegistryClient(cfg *config.Config) *RegistryClient {
	return &RegistryClient{
		baseURL:       cfg.ExternalServices.AssetRegistryURL,
		internalToken: cfg.ExternalServices.AssetRegistryToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetAsset returns nil without error when the registry does not know the
// asset. Network errors are retried a few times before giving up.
func (c *RegistryClient) GetAsset(ctx context.Context, assetID string) (*AssetStatus, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("asset registry URL is not configured")
	}

	u, err := url.Parse(c.baseURL + "/internal/assets/" + url.PathEscape(assetID))
	if err != nil {
		return nil, fmt.Errorf("invalid asset registry URL: %w", err)
	}

	var resp *http.Response
	var lastErr error
	maxRetries := 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if c.internalToken != "" {
			req.Header.Set("X-Internal-Token", c.internalToken)
		}

		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil {
			break
		}
		if attempt == maxRetries-1 {
			return nil, fmt.Errorf("failed to reach asset registry after %d attempts: %w", maxRetries, lastErr)
		}
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	if resp == nil {
		return nil, fmt.Errorf("failed to reach asset registry: %w", lastErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset registry returned status %d: %s", resp.StatusCode, string(body))
	}

	var response assetStatusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &response.Data, nil
}
