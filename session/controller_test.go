package session_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"landsquire.in/estatemap/catalog"
	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/geocode"
	"landsquire.in/estatemap/listing"
	"landsquire.in/estatemap/locate"
	"landsquire.in/estatemap/session"
)

type catalogMock struct {
	categories func(ctx context.Context) ([]catalog.Category, error)
	properties func(ctx context.Context, filters catalog.PropertyFilters) ([]listing.Property, error)
	projects   func(ctx context.Context, city string) ([]listing.Project, error)
}

func (m *catalogMock) Categories(ctx context.Context) ([]catalog.Category, error) {
	if m.categories == nil {
		return nil, nil
	}
	return m.categories(ctx)
}

func (m *catalogMock) FilteredProperties(ctx context.Context, filters catalog.PropertyFilters) ([]listing.Property, error) {
	if m.properties == nil {
		return nil, nil
	}
	return m.properties(ctx, filters)
}

func (m *catalogMock) UpcomingProjects(ctx context.Context, city string) ([]listing.Project, error) {
	if m.projects == nil {
		return nil, nil
	}
	return m.projects(ctx, city)
}

type geocoderMock struct {
	geocode      func(ctx context.Context, address string) (orb.Point, error)
	reverse      func(ctx context.Context, lat, lng float64) (string, error)
	autocomplete func(ctx context.Context, query string) ([]geocode.Suggestion, error)
	details      func(ctx context.Context, placeID string) (geocode.Place, error)
}

func (m *geocoderMock) Geocode(ctx context.Context, address string) (orb.Point, error) {
	if m.geocode == nil {
		return geo.DefaultPoint(), nil
	}
	return m.geocode(ctx, address)
}

func (m *geocoderMock) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if m.reverse == nil {
		return "Ajmer", nil
	}
	return m.reverse(ctx, lat, lng)
}

func (m *geocoderMock) AutocompleteCities(ctx context.Context, query string) ([]geocode.Suggestion, error) {
	if m.autocomplete == nil {
		return nil, nil
	}
	return m.autocomplete(ctx, query)
}

func (m *geocoderMock) PlaceDetails(ctx context.Context, placeID string) (geocode.Place, error) {
	if m.details == nil {
		return geocode.Place{}, nil
	}
	return m.details(ctx, placeID)
}

type locatorMock struct {
	current func(ctx context.Context) (orb.Point, error)
}

func (m *locatorMock) Current(ctx context.Context) (orb.Point, error) {
	if m.current == nil {
		return geo.DefaultPoint(), nil
	}
	return m.current(ctx)
}

type staticTokens string

func (s staticTokens) Token() (string, error) { return string(s), nil }

func testOptions() session.Options {
	return session.Options{
		SuggestionDelay: 10 * time.Millisecond,
		RegionDelay:     time.Millisecond,
		LocationTimeout: time.Second,
	}
}

func ajmerPoint() orb.Point { return orb.Point{74.6399, 26.4499} }

func sampleProperties() []listing.Property {
	return []listing.Property{
		{Id: 1, Name: "Anasagar Flat", Price: 5_000_000, Location: orb.Point{74.64, 26.45}},
		{Id: 2, Name: "Vaishali Villa", Price: 9_000_000, Location: orb.Point{74.63, 26.46}},
	}
}

func sampleProjects() []listing.Project {
	return []listing.Project{
		{Id: 7, Name: "Pushkar Greens", Polygon: []orb.Point{
			{74.64, 26.44}, {74.65, 26.44}, {74.65, 26.45},
		}},
	}
}

func TestInitializeFetchesAndCenters(t *testing.T) {
	var propCalls atomic.Int64
	cat := &catalogMock{
		categories: func(context.Context) ([]catalog.Category, error) {
			return []catalog.Category{{ID: 1, Label: "Residential"}}, nil
		},
		properties: func(_ context.Context, filters catalog.PropertyFilters) ([]listing.Property, error) {
			propCalls.Add(1)
			if filters.City != "Ajmer" {
				t.Errorf("filter city = %q", filters.City)
			}
			if filters.PropertyFor != "sell" {
				t.Errorf("property_for = %q", filters.PropertyFor)
			}
			return sampleProperties(), nil
		},
		projects: func(_ context.Context, city string) ([]listing.Project, error) {
			return sampleProjects(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())

	c.Initialize()
	c.Initialize()

	s := c.Snapshot()
	if s.Loading {
		t.Error("still loading after initialize")
	}
	if !s.RegionSet {
		t.Fatal("region not set")
	}
	if s.Region.Center() != geo.DefaultPoint() {
		t.Errorf("region center = %v", s.Region.Center())
	}
	if s.Region.LatitudeDelta != geo.CityDelta {
		t.Errorf("latitude delta = %v", s.Region.LatitudeDelta)
	}
	if s.LocationName != "Ajmer" {
		t.Errorf("location name = %q", s.LocationName)
	}
	if s.FilteredCount != 3 {
		t.Errorf("filtered count = %d", s.FilteredCount)
	}
	if len(s.VisibleItems) != 3 {
		t.Errorf("visible = %d", len(s.VisibleItems))
	}
	if len(s.Categories) != 1 {
		t.Errorf("categories = %d", len(s.Categories))
	}
	if got := propCalls.Load(); got != 1 {
		t.Errorf("property fetches = %d, repeat Initialize must be a no-op", got)
	}
}

func TestInitializeGeocodeFailureFallsBack(t *testing.T) {
	c := session.New(session.Deps{
		Catalog: &catalogMock{},
		Geocoder: &geocoderMock{
			geocode: func(context.Context, string) (orb.Point, error) {
				return orb.Point{}, geocode.ErrMissingKey
			},
		},
		Locator: &locatorMock{},
		Tokens:  staticTokens("tok"),
	}, testOptions())

	c.Initialize()

	s := c.Snapshot()
	if !s.RegionSet {
		t.Fatal("region must fall back to default coordinates")
	}
	if s.Region.Center() != geo.DefaultPoint() {
		t.Errorf("region center = %v", s.Region.Center())
	}
	if s.LocationName != "Ajmer" {
		t.Errorf("location name = %q", s.LocationName)
	}
}

func TestEmptyTokenRedirectsWithoutFetching(t *testing.T) {
	var calls atomic.Int64
	cat := &catalogMock{
		properties: func(context.Context, catalog.PropertyFilters) ([]listing.Property, error) {
			calls.Add(1)
			return nil, nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens(""),
	}, testOptions())

	c.Apply()

	s := c.Snapshot()
	if !s.RedirectSignIn {
		t.Error("expected sign-in redirect")
	}
	if s.Error == "" {
		t.Error("expected sign-in error message")
	}
	if calls.Load() != 0 {
		t.Errorf("catalog called %d times without a token", calls.Load())
	}
}

func TestFetchFailureKeepsPreviousData(t *testing.T) {
	var fail atomic.Bool
	cat := &catalogMock{
		properties: func(context.Context, catalog.PropertyFilters) ([]listing.Property, error) {
			if fail.Load() {
				return nil, catalog.ErrNetwork
			}
			return sampleProperties(), nil
		},
		projects: func(context.Context, string) ([]listing.Project, error) {
			return sampleProjects(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.Initialize()

	fail.Store(true)
	c.Apply()

	s := c.Snapshot()
	if !strings.Contains(s.Error, "Network error") {
		t.Errorf("error = %q", s.Error)
	}
	if s.FilteredCount != 3 {
		t.Errorf("previous results lost: filtered = %d", s.FilteredCount)
	}
}

func TestApplyPropertyModeIgnoredWhileLoading(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var modes []string
	var mu sync.Mutex

	cat := &catalogMock{
		properties: func(_ context.Context, filters catalog.PropertyFilters) ([]listing.Property, error) {
			mu.Lock()
			modes = append(modes, filters.PropertyFor)
			mu.Unlock()
			once.Do(func() {
				close(entered)
				<-release
			})
			return sampleProperties(), nil
		},
		projects: func(context.Context, string) ([]listing.Project, error) {
			return nil, nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())

	done := make(chan struct{})
	go func() {
		c.Initialize()
		close(done)
	}()
	<-entered

	c.ApplyPropertyMode(session.ModeRent)

	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(modes) != 1 {
		t.Fatalf("fetches = %d, mode switch during load must be dropped", len(modes))
	}
	if c.Snapshot().PropertyMode != session.ModeSell {
		t.Errorf("property mode = %q", c.Snapshot().PropertyMode)
	}
}

func TestStaleFetchDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int64

	cat := &catalogMock{
		properties: func(context.Context, catalog.PropertyFilters) ([]listing.Property, error) {
			if calls.Add(1) == 1 {
				close(entered)
				<-release
				return []listing.Property{{Id: 99, Name: "Stale", Price: 1, Location: orb.Point{74.64, 26.45}}}, nil
			}
			return sampleProperties(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())

	done := make(chan struct{})
	go func() {
		c.Initialize()
		close(done)
	}()
	<-entered

	// a fresher fetch completes while the first is still blocked
	c.Apply()
	s := c.Snapshot()
	if s.FilteredCount != 2 {
		t.Fatalf("filtered = %d after fresh fetch", s.FilteredCount)
	}

	close(release)
	<-done

	s = c.Snapshot()
	if s.Loading {
		t.Error("stale completion must not resurrect the loading flag")
	}
	if s.FilteredCount != 2 {
		t.Errorf("stale fetch overwrote fresh results: filtered = %d", s.FilteredCount)
	}
	for _, item := range s.VisibleItems {
		if item.ID() == 99 {
			t.Error("stale property leaked into visible items")
		}
	}
}

func TestSearchDebouncesToTrailingCall(t *testing.T) {
	var calls atomic.Int64
	var lastQuery atomic.Value
	g := &geocoderMock{
		autocomplete: func(_ context.Context, query string) ([]geocode.Suggestion, error) {
			calls.Add(1)
			lastQuery.Store(query)
			return []geocode.Suggestion{{Description: "Jaipur", PlaceID: "p1"}}, nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  &catalogMock{},
		Geocoder: g,
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())

	for _, q := range []string{"j", "ja", "jai", "jaip", "jaipur"} {
		c.HandleSearch(q)
	}
	time.Sleep(60 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("autocomplete calls = %d", got)
	}
	if lastQuery.Load() != "jaipur" {
		t.Errorf("query = %v", lastQuery.Load())
	}
	s := c.Snapshot()
	if !s.ShowSuggestions || len(s.Suggestions) != 1 {
		t.Errorf("suggestions not surfaced: %+v", s)
	}
}

func TestClearedSearchCancelsPendingLookup(t *testing.T) {
	var calls atomic.Int64
	g := &geocoderMock{
		autocomplete: func(context.Context, string) ([]geocode.Suggestion, error) {
			calls.Add(1)
			return nil, nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  &catalogMock{},
		Geocoder: g,
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())

	c.HandleSearch("jai")
	c.HandleSearch("")
	time.Sleep(40 * time.Millisecond)

	if calls.Load() != 0 {
		t.Errorf("autocomplete calls = %d after clearing", calls.Load())
	}
	if c.Snapshot().ShowSuggestions {
		t.Error("suggestions still showing after clear")
	}
}

func TestSuggestionPressRecentersAndRefetches(t *testing.T) {
	jaipur := orb.Point{75.7873, 26.9124}
	var cities []string
	var mu sync.Mutex

	cat := &catalogMock{
		properties: func(_ context.Context, filters catalog.PropertyFilters) ([]listing.Property, error) {
			mu.Lock()
			cities = append(cities, filters.City)
			mu.Unlock()
			return sampleProperties(), nil
		},
	}
	g := &geocoderMock{
		details: func(_ context.Context, placeID string) (geocode.Place, error) {
			if placeID != "p1" {
				t.Errorf("place id = %q", placeID)
			}
			return geocode.Place{Location: jaipur, City: "Jaipur"}, nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: g,
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.HandleSearch("jai")

	c.HandleSuggestionPress(geocode.Suggestion{Description: "Jaipur", PlaceID: "p1"})

	s := c.Snapshot()
	if s.Region.Center() != jaipur {
		t.Errorf("region center = %v", s.Region.Center())
	}
	if s.LocationName != "Jaipur" || s.SelectedCity != "Jaipur" {
		t.Errorf("city = %q / %q", s.LocationName, s.SelectedCity)
	}
	if s.SearchQuery != "" || s.ShowSuggestions {
		t.Error("search state not cleared")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(cities) != 1 || cities[0] != "Jaipur" {
		t.Errorf("refetch cities = %v", cities)
	}
}

func TestCurrentLocationDeniedFallsBack(t *testing.T) {
	var cities []string
	var mu sync.Mutex
	cat := &catalogMock{
		properties: func(_ context.Context, filters catalog.PropertyFilters) ([]listing.Property, error) {
			mu.Lock()
			cities = append(cities, filters.City)
			mu.Unlock()
			return sampleProperties(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator: &locatorMock{current: func(context.Context) (orb.Point, error) {
			return orb.Point{}, locate.ErrDisabled
		}},
		Tokens: staticTokens("tok"),
	}, testOptions())

	c.GetCurrentLocation()

	s := c.Snapshot()
	if !strings.Contains(s.Error, "permission") {
		t.Errorf("error = %q", s.Error)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(cities) != 1 || cities[0] != "Ajmer" {
		t.Errorf("fallback cities = %v", cities)
	}
}

func TestCurrentLocationUsesReverseGeocodedCity(t *testing.T) {
	here := orb.Point{75.80, 26.90}
	var cities []string
	var mu sync.Mutex
	cat := &catalogMock{
		properties: func(_ context.Context, filters catalog.PropertyFilters) ([]listing.Property, error) {
			mu.Lock()
			cities = append(cities, filters.City)
			mu.Unlock()
			return sampleProperties(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog: cat,
		Geocoder: &geocoderMock{reverse: func(_ context.Context, lat, lng float64) (string, error) {
			if lat != here.Lat() || lng != here.Lon() {
				t.Errorf("reverse geocode got %v, %v", lat, lng)
			}
			return "Jaipur", nil
		}},
		Locator: &locatorMock{current: func(context.Context) (orb.Point, error) {
			return here, nil
		}},
		Tokens: staticTokens("tok"),
	}, testOptions())

	c.GetCurrentLocation()

	s := c.Snapshot()
	if s.Region.Center() != here {
		t.Errorf("region center = %v", s.Region.Center())
	}
	if s.LocationName != "Jaipur" {
		t.Errorf("location name = %q", s.LocationName)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(cities) != 1 || cities[0] != "Jaipur" {
		t.Errorf("cities = %v", cities)
	}
}

func TestLoadMoreGrowsPrefix(t *testing.T) {
	many := make([]listing.Property, 25)
	for i := range many {
		many[i] = listing.Property{
			Id:       int64(i + 1),
			Name:     "P",
			Price:    1_000_000,
			Location: orb.Point{74.64, 26.45},
		}
	}
	cat := &catalogMock{
		properties: func(context.Context, catalog.PropertyFilters) ([]listing.Property, error) {
			return many, nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.Initialize()

	s := c.Snapshot()
	if len(s.VisibleItems) != 10 || !s.HasMore {
		t.Fatalf("page 1: visible = %d hasMore = %v", len(s.VisibleItems), s.HasMore)
	}

	c.LoadMore()
	s = c.Snapshot()
	if len(s.VisibleItems) != 20 || !s.HasMore {
		t.Fatalf("page 2: visible = %d hasMore = %v", len(s.VisibleItems), s.HasMore)
	}
	if s.VisibleItems[0].ID() != 1 {
		t.Error("pagination must grow the prefix, not slide a window")
	}

	c.LoadMore()
	s = c.Snapshot()
	if len(s.VisibleItems) != 25 || s.HasMore {
		t.Fatalf("page 3: visible = %d hasMore = %v", len(s.VisibleItems), s.HasMore)
	}

	c.LoadMore()
	if got := c.Snapshot().Page; got != 3 {
		t.Errorf("page advanced past the end: %d", got)
	}
}

func TestMarkerPressFocusesAndOpensDetail(t *testing.T) {
	cat := &catalogMock{
		properties: func(context.Context, catalog.PropertyFilters) ([]listing.Property, error) {
			return sampleProperties(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.Initialize()

	target := sampleProperties()[1]
	c.HandleMarkerPress(target)

	s := c.Snapshot()
	if !s.DetailOpen || s.Selected == nil || s.Selected.ID() != target.Id {
		t.Fatalf("detail not open on target: %+v", s.Selected)
	}
	if s.Region.Center() != target.Location {
		t.Errorf("region center = %v", s.Region.Center())
	}
	if s.Region.LatitudeDelta != geo.FocusDelta {
		t.Errorf("focus delta = %v", s.Region.LatitudeDelta)
	}

	route, ok := c.ViewSelected()
	if !ok || route != "/properties/2" {
		t.Errorf("route = %q ok = %v", route, ok)
	}

	c.CloseDetail()
	s = c.Snapshot()
	if s.DetailOpen || s.Selected != nil {
		t.Error("detail state not cleared")
	}
}

func TestRegionChangeRefiltersWithoutRefetch(t *testing.T) {
	var fetches atomic.Int64
	cat := &catalogMock{
		properties: func(context.Context, catalog.PropertyFilters) ([]listing.Property, error) {
			fetches.Add(1)
			return []listing.Property{
				{Id: 1, Name: "Near", Price: 1, Location: orb.Point{74.64, 26.45}},
				{Id: 2, Name: "Far", Price: 1, Location: orb.Point{75.80, 26.90}},
			}, nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.Initialize()

	if got := len(c.Snapshot().VisibleItems); got != 1 {
		t.Fatalf("visible before pan = %d", got)
	}

	c.HandleRegionChange(geo.NewRegion(orb.Point{75.80, 26.90}, geo.CityDelta))
	time.Sleep(20 * time.Millisecond)

	s := c.Snapshot()
	if len(s.VisibleItems) != 1 || s.VisibleItems[0].ID() != 2 {
		t.Errorf("visible after pan = %+v", s.VisibleItems)
	}
	if fetches.Load() != 1 {
		t.Errorf("panning triggered %d fetches", fetches.Load())
	}
}

func TestDisplayModeFiltersKinds(t *testing.T) {
	cat := &catalogMock{
		properties: func(context.Context, catalog.PropertyFilters) ([]listing.Property, error) {
			return sampleProperties(), nil
		},
		projects: func(context.Context, string) ([]listing.Project, error) {
			return sampleProjects(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.Initialize()

	c.SetDisplayMode(session.DisplayProjects)
	s := c.Snapshot()
	if s.FilteredCount != 1 || s.VisibleItems[0].Kind() != listing.KindProject {
		t.Errorf("projects mode: count = %d", s.FilteredCount)
	}

	c.SetDisplayMode(session.DisplayProperties)
	s = c.Snapshot()
	if s.FilteredCount != 2 {
		t.Errorf("properties mode: count = %d", s.FilteredCount)
	}

	c.SetDisplayMode(session.DisplayBoth)
	if got := c.Snapshot().FilteredCount; got != 3 {
		t.Errorf("both mode: count = %d", got)
	}
}

func TestEmptyResultsMessage(t *testing.T) {
	c := session.New(session.Deps{
		Catalog:  &catalogMock{},
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.Initialize()

	s := c.Snapshot()
	if !strings.Contains(s.Error, "No results found for Ajmer") {
		t.Errorf("error = %q", s.Error)
	}
	if len(s.VisibleItems) != 0 {
		t.Errorf("visible = %d", len(s.VisibleItems))
	}
}

func TestMedianVisiblePrice(t *testing.T) {
	cat := &catalogMock{
		properties: func(context.Context, catalog.PropertyFilters) ([]listing.Property, error) {
			return []listing.Property{
				{Id: 1, Price: 1_000_000, Location: orb.Point{74.64, 26.45}},
				{Id: 2, Price: 3_000_000, Location: orb.Point{74.64, 26.45}},
				{Id: 3, Price: 9_000_000, Location: orb.Point{74.64, 26.45}},
			}, nil
		},
		projects: func(context.Context, string) ([]listing.Project, error) {
			return sampleProjects(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.Initialize()

	if got := c.Snapshot().MedianVisiblePrice; got != 3_000_000 {
		t.Errorf("median = %v", got)
	}
}

func TestResetClearsFiltersAndRefetches(t *testing.T) {
	var lastFilters catalog.PropertyFilters
	var mu sync.Mutex
	cat := &catalogMock{
		properties: func(_ context.Context, filters catalog.PropertyFilters) ([]listing.Property, error) {
			mu.Lock()
			lastFilters = filters
			mu.Unlock()
			return sampleProperties(), nil
		},
	}
	c := session.New(session.Deps{
		Catalog:  cat,
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())
	c.Initialize()

	c.SetCategory("1")
	c.SetMinPrice("500000")
	c.Apply()

	c.Reset()

	s := c.Snapshot()
	if s.SelectedCategory != "" || s.MinPrice != "" {
		t.Errorf("filters survived reset: %q %q", s.SelectedCategory, s.MinPrice)
	}
	if s.PropertyMode != session.ModeSell {
		t.Errorf("property mode = %q", s.PropertyMode)
	}
	mu.Lock()
	defer mu.Unlock()
	if lastFilters.Category != "" || lastFilters.MinPrice != "" || lastFilters.City != "Ajmer" {
		t.Errorf("reset fetch filters = %+v", lastFilters)
	}
}

func TestSetCategoryClearsSubCategory(t *testing.T) {
	c := session.New(session.Deps{
		Catalog:  &catalogMock{},
		Geocoder: &geocoderMock{},
		Locator:  &locatorMock{},
		Tokens:   staticTokens("tok"),
	}, testOptions())

	c.SetCategory("1")
	c.SetSubCategory("flat")
	c.SetCategory("2")

	if got := c.Snapshot().SelectedSubCategory; got != "" {
		t.Errorf("subcategory = %q after category change", got)
	}
}
