package catalog

import (
	"encoding/json"
	"net/url"
	"strconv"

	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/listing"
)

type Category struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// PropertyFilters serialize to the filterlistings query string. Empty
// fields are omitted.
type PropertyFilters struct {
	City        string
	Category    string
	SubCategory string
	MinPrice    string
	MaxPrice    string
	SqftFrom    string
	SqftTo      string
	PropertyFor string
}

func (f PropertyFilters) query() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("filtercity", f.City)
	set("category", f.Category)
	set("subcategory", f.SubCategory)
	set("min_price", f.MinPrice)
	set("max_price", f.MaxPrice)
	set("min_sqft", f.SqftFrom)
	set("max_sqft", f.SqftTo)
	set("filterpropertyfor", f.PropertyFor)
	return q
}

// flexFloat tolerates the API quoting numbers as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type propertyRecord struct {
	ID           int64     `json:"id"`
	PropertyName string    `json:"property_name"`
	Price        flexFloat `json:"price"`
	Category     string    `json:"category"`
	City         string    `json:"city"`
	MapLocations string    `json:"maplocations"`
}

type projectRecord struct {
	ID           int64  `json:"id"`
	ProjectTitle string `json:"projecttitle"`
	City         string `json:"city"`
	Coordinates  string `json:"coordinates"`
}

type categoriesResponse struct {
	Categories []Category `json:"categories"`
}

type listingsResponse struct {
	Data []propertyRecord `json:"data"`
}

type projectsResponse struct {
	Projects []projectRecord `json:"projects"`
}

// normalizeProperties drops records without a geo field and decodes
// the rest. A record whose coordinates fail to parse still shows up,
// anchored at the default location; that is the parser's contract.
func normalizeProperties(records []propertyRecord) []listing.Property {
	properties := make([]listing.Property, 0, len(records))
	for _, rec := range records {
		if rec.MapLocations == "" {
			continue
		}
		properties = append(properties, listing.Property{
			Id:       rec.ID,
			Name:     rec.PropertyName,
			Price:    float64(rec.Price),
			Category: rec.Category,
			City:     rec.City,
			Location: geo.ParsePointLocation(rec.MapLocations),
		})
	}
	return properties
}

func normalizeProjects(records []projectRecord) []listing.Project {
	projects := make([]listing.Project, 0, len(records))
	for _, rec := range records {
		if rec.Coordinates == "" {
			continue
		}
		projects = append(projects, listing.Project{
			Id:      rec.ID,
			Name:    rec.ProjectTitle,
			City:    rec.City,
			Polygon: geo.ParsePolygon(rec.Coordinates),
		})
	}
	return projects
}
