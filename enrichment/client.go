// Copyright (C) 2025 opencomply
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// ComponentQuery identifies one component in a lookup batch.
type ComponentQuery struct {
	Purl      string `json:"purl"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	Ecosystem string `json:"ecosystem"`
}

// ComponentIntelligence is what the analysis service knows about a
// single component. License and LatestVersion are empty when the
// service has no record for the purl.
type ComponentIntelligence struct {
	Purl          string          `json:"purl"`
	License       string          `json:"resolvedLicense"`
	LatestVersion string          `json:"latestVersion"`
	Advisories    []AdvisoryEntry `json:"vulnerabilities"`
}

type AdvisoryEntry struct {
	ID       string  `json:"vulnId"`
	Severity string  `json:"severity"`
	CVSS     float64 `json:"cvssV3BaseScore"`
	Vector   string  `json:"cvssV3Vector"`
	Source   string  `json:"source"`
}

// Client performs batched component lookups against a component
// analysis service.
type Client interface {
	LookupBatch(ctx context.Context, queries []ComponentQuery) ([]ComponentIntelligence, error)
}

type httpClient struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	rateLimiter rate.Limiter
}

// NewClient builds a Client against the configured analysis service.
// Authentication uses the X-Api-Key header.
func NewClient(baseURL, apiKey string) Client {
	return &httpClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: *rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

// NewClientFromEnv reads ENRICHMENT_API_URL and ENRICHMENT_API_KEY.
func NewClientFromEnv() Client {
	return NewClient(os.Getenv("ENRICHMENT_API_URL"), os.Getenv("ENRICHMENT_API_KEY"))
}

func (c *httpClient) LookupBatch(ctx context.Context, queries []ComponentQuery) ([]ComponentIntelligence, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]any{
		"components": queries,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/component/batch", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, &LookupError{Retryable: true, Inner: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &LookupError{
			// 5xx and 429 are transient, everything else is not worth a retry
			Retryable: res.StatusCode >= 500 || res.StatusCode == http.StatusTooManyRequests,
			Inner:     fmt.Errorf("component lookup failed: %s", res.Status),
		}
	}

	var response struct {
		Components []ComponentIntelligence `json:"components"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, &LookupError{Retryable: false, Inner: err}
	}

	return response.Components, nil
}

// LookupError wraps a failed batch lookup and says whether retrying
// could help.
type LookupError struct {
	Retryable bool
	Inner     error
}

func (e *LookupError) Error() string {
	return e.Inner.Error()
}

func (e *LookupError) Unwrap() error {
	return e.Inner
}
