package session

import (
	"slices"

	"landsquire.in/estatemap/catalog"
	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/geocode"
	"landsquire.in/estatemap/listing"
)

// Snapshot is an immutable copy of the controller state, taken under
// the lock. The TUI polls it on every tick and renders from it alone.
type Snapshot struct {
	Loading        bool
	Error          string
	RedirectSignIn bool

	Region       geo.Region
	RegionSet    bool
	LocationName string
	SelectedCity string

	SearchQuery     string
	Suggestions     []geocode.Suggestion
	ShowSuggestions bool

	DisplayMode  DisplayMode
	PropertyMode PropertyMode
	MapType      MapType

	Categories          []catalog.Category
	SelectedCategory    string
	SelectedSubCategory string
	MinPrice            string
	MaxPrice            string
	SqftFrom            string
	SqftTo              string

	FilteredCount int
	VisibleItems  []listing.Entity
	Page          int
	HasMore       bool

	Selected   listing.Entity
	DetailOpen bool

	MedianVisiblePrice float64
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Loading:        c.st.loading,
		Error:          c.st.errMsg,
		RedirectSignIn: c.st.redirectSignIn,

		Region:       c.st.region,
		RegionSet:    c.st.regionSet,
		LocationName: c.st.locationName,
		SelectedCity: c.st.selectedCity,

		SearchQuery:     c.st.searchQuery,
		Suggestions:     slices.Clone(c.st.suggestions),
		ShowSuggestions: c.st.showSuggestions,

		DisplayMode:  c.st.displayMode,
		PropertyMode: c.st.propertyMode,
		MapType:      c.st.mapType,

		Categories:          slices.Clone(c.st.categories),
		SelectedCategory:    c.st.selectedCategory,
		SelectedSubCategory: c.st.selectedSubCategory,
		MinPrice:            c.st.minPrice,
		MaxPrice:            c.st.maxPrice,
		SqftFrom:            c.st.sqftFrom,
		SqftTo:              c.st.sqftTo,

		FilteredCount: len(c.st.filteredData),
		VisibleItems:  slices.Clone(c.st.visibleItems),
		Page:          c.st.page,
		HasMore:       c.st.hasMore,

		Selected:   c.st.selected,
		DetailOpen: c.st.detailOpen,

		MedianVisiblePrice: c.st.medianPrice,
	}
}
