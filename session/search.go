package session

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/geocode"
	"landsquire.in/estatemap/utils"
)

// HandleSearch records the search text and schedules a debounced
// autocomplete lookup. Clearing the text cancels any pending lookup
// and hides the suggestion list.
func (c *Controller) HandleSearch(query string) {
	trimmed := strings.TrimSpace(query)

	c.mu.Lock()
	c.st.searchQuery = query
	if trimmed == "" {
		c.st.suggestions = nil
		c.st.showSuggestions = false
	}
	c.mu.Unlock()

	if trimmed == "" {
		c.suggestDebounce.Cancel()
		return
	}
	c.suggestDebounce.Call(func() {
		c.fetchCitySuggestions(query)
	})
}

func (c *Controller) fetchCitySuggestions(query string) {
	suggestions, err := c.deps.Geocoder.AutocompleteCities(context.Background(), query)
	if err != nil {
		utils.Logde(errors.Wrap(err, "can't fetch city suggestions"))
		c.mu.Lock()
		c.st.suggestions = nil
		c.st.showSuggestions = false
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.searchQuery != query {
		// the user kept typing; a fresher lookup is on its way
		return
	}
	c.st.suggestions = suggestions
	c.st.showSuggestions = len(suggestions) > 0
}

// HandleSuggestionPress resolves the picked suggestion to coordinates,
// recenters on the city, and refetches for it. Search state is cleared
// up front so the suggestion list closes immediately.
func (c *Controller) HandleSuggestionPress(s geocode.Suggestion) {
	c.suggestDebounce.Cancel()

	c.mu.Lock()
	c.st.searchQuery = ""
	c.st.suggestions = nil
	c.st.showSuggestions = false
	c.st.loading = true
	c.st.errMsg = ""
	c.mu.Unlock()

	place, err := c.deps.Geocoder.PlaceDetails(context.Background(), s.PlaceID)
	if err != nil {
		utils.Loge(errors.Wrap(err, "can't resolve place"))
		c.mu.Lock()
		c.st.loading = false
		c.st.errMsg = "Could not load the selected city. Please try again."
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.st.region = geo.NewRegion(place.Location, geo.CityDelta)
	c.st.regionSet = true
	c.st.locationName = place.City
	c.st.selectedCity = place.City
	c.mu.Unlock()

	c.fetchFilterData(place.City, "")
}
