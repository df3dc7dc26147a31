package listing

import (
	"log/slog"

	"landsquire.in/estatemap/geo"
)

// InView returns the entities whose anchor point lies within the
// viewport, bounds inclusive. Entities without a finite anchor are
// excluded and logged. Input order is preserved; callers must treat it
// as source-fetch order, not a ranking.
func InView(entities []Entity, region geo.Region) []Entity {
	inView := make([]Entity, 0, len(entities))
	for _, e := range entities {
		anchor := e.Anchor()
		if !geo.Finite(anchor) {
			slog.Debug("entity anchor not finite, skipping", "kind", e.Kind(), "id", e.ID())
			continue
		}
		if region.Contains(anchor) {
			inView = append(inView, e)
		}
	}
	return inView
}

// Paginate exposes the first page*pageSize entities: a growing prefix,
// not a sliding window, so advancing the page only ever adds markers.
// hasMore reports whether entities beyond the cutoff remain.
func Paginate(entities []Entity, page, pageSize int) (visible []Entity, hasMore bool) {
	if page < 1 {
		page = 1
	}
	cutoff := page * pageSize
	if cutoff >= len(entities) {
		return entities, false
	}
	return entities[:cutoff], true
}
