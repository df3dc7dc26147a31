package cli

import (
	"fmt"
	"strings"

	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/listing"
	"landsquire.in/estatemap/session"
)

func renderDetail(snap session.Snapshot) string {
	if snap.Selected == nil {
		return faintStyle.Render("Nothing selected.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(snap.Selected.Title()) + "\n\n")

	switch item := snap.Selected.(type) {
	case listing.Property:
		b.WriteString(fmt.Sprintf("Asking price:  %s\n", geo.FormatINR(item.Price)))
		if item.Category != "" {
			b.WriteString(fmt.Sprintf("Category:      %s\n", item.Category))
		}
		if item.City != "" {
			b.WriteString(fmt.Sprintf("City:          %s\n", item.City))
		}
		b.WriteString(fmt.Sprintf("Coordinates:   %.4f, %.4f\n", item.Location.Lat(), item.Location.Lon()))
	case listing.Project:
		b.WriteString("Upcoming project\n")
		if item.City != "" {
			b.WriteString(fmt.Sprintf("City:          %s\n", item.City))
		}
		anchor := item.Anchor()
		b.WriteString(fmt.Sprintf("Site center:   %.4f, %.4f\n", anchor.Lat(), anchor.Lon()))
		b.WriteString(fmt.Sprintf("Boundary:      %d vertices\n", len(item.Polygon)))
	}

	b.WriteString("\n" + faintStyle.Render(listing.Route(snap.Selected)))
	return b.String()
}
