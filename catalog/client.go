// Package catalog talks to the LandSquire listings API. The client is
// a stateless façade: it shapes requests, normalizes payloads into
// listing entities, and folds failures into a small taxonomy. Retry
// policy belongs to the caller.
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"landsquire.in/estatemap/listing"
)

const (
	categoriesPath = "/api/get-categories"
	listingsPath   = "/api/filterlistings"
	projectsPath   = "/api/upcomingproject"
)

// TokenSource yields the bearer token for catalog requests. An empty
// token signals an unauthenticated session.
type TokenSource interface {
	Token() (string, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

func NewClient(httpClient *http.Client, baseURL string, tokens TokenSource) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
	}
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp categoriesResponse
	if err := c.getJSON(ctx, categoriesPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) FilteredProperties(ctx context.Context, filters PropertyFilters) ([]listing.Property, error) {
	var resp listingsResponse
	if err := c.getJSON(ctx, listingsPath, filters.query(), &resp); err != nil {
		return nil, err
	}
	return normalizeProperties(resp.Data), nil
}

func (c *Client) UpcomingProjects(ctx context.Context, city string) ([]listing.Project, error) {
	q := url.Values{}
	if city != "" {
		q.Set("city", city)
	}
	var resp projectsResponse
	if err := c.getJSON(ctx, projectsPath, q, &resp); err != nil {
		return nil, err
	}
	return normalizeProjects(resp.Projects), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return errors.Wrap(err, "can't read auth token")
	}
	if token == "" {
		return ErrUnauthenticated
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, "can't create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ClassifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ClassifyTransport(err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthenticated
	case resp.StatusCode != http.StatusOK:
		return errors.Errorf("server sent http error: %d, %s", resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "can't parse response body: %s", body)
	}
	return nil
}
