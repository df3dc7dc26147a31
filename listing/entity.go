// Package listing holds the geo-entities shown on the map: point
// properties and polygon projects, plus the viewport filtering that
// decides which of them are on screen.
package listing

import (
	"fmt"

	"github.com/paulmach/orb"

	"landsquire.in/estatemap/geo"
)

type Kind string

const (
	KindProperty Kind = "property"
	KindProject  Kind = "project"
)

// Entity is a marker on the map. Anchor is the single point used to
// place and bucket it: the property's own location, or the project
// polygon's centroid.
type Entity interface {
	Kind() Kind
	ID() int64
	Title() string
	Anchor() orb.Point
}

type Property struct {
	Id       int64
	Name     string
	Price    float64
	Category string
	City     string
	Location orb.Point
}

func (p Property) Kind() Kind        { return KindProperty }
func (p Property) ID() int64         { return p.Id }
func (p Property) Title() string     { return p.Name }
func (p Property) Anchor() orb.Point { return p.Location }

type Project struct {
	Id      int64
	Name    string
	City    string
	Polygon []orb.Point
}

func (p Project) Kind() Kind    { return KindProject }
func (p Project) ID() int64     { return p.Id }
func (p Project) Title() string { return p.Name }

func (p Project) Anchor() orb.Point { return geo.Centroid(p.Polygon) }

// Renderable reports whether the project has enough vertices to draw
// as a polygon. Non-renderable projects still count toward totals.
func (p Project) Renderable() bool { return len(p.Polygon) >= 3 }

// Route returns the navigation target the host router resolves when
// the user opens an entity.
func Route(e Entity) string {
	if e.Kind() == KindProject {
		return fmt.Sprintf("/projects/%d", e.ID())
	}
	return fmt.Sprintf("/properties/%d", e.ID())
}
