package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"ranked-clicker/internal/config"
	"ranked-clicker/internal/constants"
)

// ReleasesClient fetches the latest published release of the game. This is
// the engine's only outbound network call and callers treat every failure
// as non-fatal.
type ReleasesClient struct {
	url    string
	client *fasthttp.Client
}

func NewReleasesClient(cfg *config.Config) *ReleasesClient {
	return &ReleasesClient{
		url: cfg.ReleasesURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			ReadTimeout:         constants.ReleaseCheckTimeout,
			WriteTimeout:        constants.ReleaseCheckTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

type ReleaseResponse struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
}

// Latest returns the newest release. The context deadline, when present,
// caps the request timeout.
func (c *ReleasesClient) Latest(ctx context.Context) (*ReleaseResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/vnd.github+json")

	timeout := constants.ReleaseCheckTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("release check failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("release check returned status %d", resp.StatusCode())
	}

	var release ReleaseResponse
	if err := json.Unmarshal(resp.Body(), &release); err != nil {
		return nil, fmt.Errorf("failed to decode release response: %w", err)
	}
	return &release, nil
}
