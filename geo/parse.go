package geo

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/paulmach/orb"
)

// The catalog serializes coordinates as JSON strings and is not
// consistent about number vs. string fields, so both are accepted.

type pointRecord struct {
	Latitude  any `json:"Latitude"`
	Longitude any `json:"Longitude"`
}

type vertexRecord struct {
	Lat any `json:"lat"`
	Lng any `json:"lng"`
}

// ParsePointLocation decodes a property's maplocations field. It fails
// closed: any structural error, missing field, or non-finite value
// yields the default location rather than an error.
func ParsePointLocation(raw string) orb.Point {
	var rec pointRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Debug("unparseable maplocations", "raw", raw, "error", err)
		return DefaultPoint()
	}
	lat, latOK := coerceFloat(rec.Latitude)
	lng, lngOK := coerceFloat(rec.Longitude)
	if !latOK || !lngOK {
		slog.Debug("maplocations missing usable coordinates", "raw", raw)
		return DefaultPoint()
	}
	p := orb.Point{lng, lat}
	if !Finite(p) {
		slog.Debug("maplocations coordinates not finite", "raw", raw)
		return DefaultPoint()
	}
	return p
}

// ParsePolygon decodes a project's coordinates field. Vertices with a
// missing or non-numeric coordinate are dropped, order preserved. A
// structural error yields an empty slice; the caller decides whether
// the remainder is renderable.
func ParsePolygon(raw string) []orb.Point {
	var recs []vertexRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		slog.Debug("unparseable project coordinates", "raw", raw, "error", err)
		return nil
	}
	vertices := make([]orb.Point, 0, len(recs))
	for _, rec := range recs {
		lat, latOK := coerceFloat(rec.Lat)
		lng, lngOK := coerceFloat(rec.Lng)
		if !latOK || !lngOK {
			continue
		}
		vertices = append(vertices, orb.Point{lng, lat})
	}
	return vertices
}

// Centroid returns the arithmetic mean of the vertices, or the default
// location for an empty input.
func Centroid(vertices []orb.Point) orb.Point {
	if len(vertices) == 0 {
		return DefaultPoint()
	}
	var latSum, lngSum float64
	for _, v := range vertices {
		latSum += v.Lat()
		lngSum += v.Lon()
	}
	n := float64(len(vertices))
	return orb.Point{lngSum / n, latSum / n}
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
