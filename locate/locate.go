// Package locate answers "where is this device" for the nearby-you
// flow. There is no GPS in a terminal, so it asks an IP geolocation
// endpoint; an enabled flag stands in for the platform permission
// model. Callers bound the request with a context deadline.
package locate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"landsquire.in/estatemap/catalog"
)

// ErrDisabled reports that location lookup is switched off in the
// configuration, the moral equivalent of a denied permission.
var ErrDisabled = errors.New("location services disabled")

type Client struct {
	httpClient *http.Client
	endpoint   string
	enabled    bool
}

func NewClient(httpClient *http.Client, endpoint string, enabled bool) *Client {
	return &Client{httpClient: httpClient, endpoint: endpoint, enabled: enabled}
}

type ipLocation struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (c *Client) Current(ctx context.Context) (orb.Point, error) {
	if !c.enabled || c.endpoint == "" {
		return orb.Point{}, ErrDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "can't create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return orb.Point{}, catalog.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return orb.Point{}, catalog.ClassifyTransport(err)
	}
	if resp.StatusCode != http.StatusOK {
		return orb.Point{}, errors.Errorf("location endpoint sent http error: %d", resp.StatusCode)
	}

	var loc ipLocation
	if err := json.Unmarshal(body, &loc); err != nil {
		return orb.Point{}, errors.Wrap(err, "can't parse location response")
	}
	if loc.Status != "success" {
		return orb.Point{}, errors.Errorf("location lookup failed: %s", loc.Message)
	}
	return orb.Point{loc.Lon, loc.Lat}, nil
}
