// Package geocode proxies the third-party geocoding provider used for
// city search: forward/reverse geocoding, autocomplete, and place
// details. Every call needs an API key; without one the client fails
// fast with ErrMissingKey and never touches the network.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"landsquire.in/estatemap/catalog"
)

var (
	// ErrMissingKey is a configuration failure; callers fall back to
	// the default city instead of retrying.
	ErrMissingKey = errors.Wrap(catalog.ErrConfiguration, "geocoding API key not set")

	// ErrGeocode means the provider answered with a non-OK status.
	// Flows that hit it continue on the default city.
	ErrGeocode = errors.New("geocoder returned no result")
)

type Suggestion struct {
	Description string
	PlaceID     string
}

type Place struct {
	Location orb.Point
	City     string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type addressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location location `json:"location"`
		} `json:"geometry"`
		AddressComponents []addressComponent `json:"address_components"`
	} `json:"results"`
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Geometry struct {
			Location location `json:"location"`
		} `json:"geometry"`
		AddressComponents []addressComponent `json:"address_components"`
	} `json:"result"`
}

// Geocode resolves a free-form address to a point.
func (c *Client) Geocode(ctx context.Context, address string) (orb.Point, error) {
	q := url.Values{"address": {address}}
	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &resp); err != nil {
		return orb.Point{}, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return orb.Point{}, errors.Wrapf(ErrGeocode, "status %s for %q", resp.Status, address)
	}
	loc := resp.Results[0].Geometry.Location
	return orb.Point{loc.Lng, loc.Lat}, nil
}

// ReverseGeocode resolves coordinates to a locality name.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{"latlng": {fmt.Sprintf("%f,%f", lat, lng)}}
	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &resp); err != nil {
		return "", err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return "", errors.Wrapf(ErrGeocode, "status %s for %f,%f", resp.Status, lat, lng)
	}
	if city := locality(resp.Results[0].AddressComponents); city != "" {
		return city, nil
	}
	return "", errors.Wrap(ErrGeocode, "no locality in result")
}

// AutocompleteCities returns city suggestions for a partial query.
// Descriptions are trimmed to their leading segment, matching how the
// app displays them.
func (c *Client) AutocompleteCities(ctx context.Context, query string) ([]Suggestion, error) {
	q := url.Values{"input": {query}, "types": {"(cities)"}}
	var resp autocompleteResponse
	if err := c.getJSON(ctx, "/maps/api/place/autocomplete/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, errors.Wrapf(ErrGeocode, "autocomplete status %s", resp.Status)
	}
	suggestions := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		description, _, _ := strings.Cut(p.Description, ",")
		suggestions = append(suggestions, Suggestion{
			Description: strings.TrimSpace(description),
			PlaceID:     p.PlaceID,
		})
	}
	return suggestions, nil
}

// PlaceDetails resolves a suggestion to coordinates and a city name.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (Place, error) {
	q := url.Values{"place_id": {placeID}, "fields": {"geometry,address_components"}}
	var resp detailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", q, &resp); err != nil {
		return Place{}, err
	}
	if resp.Status != "OK" {
		return Place{}, errors.Wrapf(ErrGeocode, "details status %s", resp.Status)
	}
	loc := resp.Result.Geometry.Location
	city := locality(resp.Result.AddressComponents)
	if city == "" {
		city = "Unknown City"
	}
	return Place{Location: orb.Point{loc.Lng, loc.Lat}, City: city}, nil
}

func locality(components []addressComponent) string {
	for _, comp := range components {
		for _, t := range comp.Types {
			if t == "locality" {
				return comp.LongName
			}
		}
	}
	return ""
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingKey
	}
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "can't create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return catalog.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return catalog.ClassifyTransport(err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("geocoder sent http error: %d, %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "can't parse geocoder response: %s", body)
	}
	return nil
}
