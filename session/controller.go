// Package session owns the map discovery state: the viewport, the
// filter set, the fetched entity lists, and every derived list the
// presentation layer renders. The TUI forwards user intents here and
// polls Snapshot; it never mutates state itself.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"landsquire.in/estatemap/catalog"
	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/geocode"
	"landsquire.in/estatemap/listing"
	"landsquire.in/estatemap/utils"
)

type DisplayMode string

const (
	DisplayProperties DisplayMode = "properties"
	DisplayProjects   DisplayMode = "projects"
	DisplayBoth       DisplayMode = "both"
)

type PropertyMode string

const (
	ModeSell PropertyMode = "sell"
	ModeRent PropertyMode = "rent"
)

type MapType string

const (
	MapHybrid   MapType = "hybrid"
	MapStandard MapType = "standard"
)

// Catalog is the slice of the listings API the controller needs.
type Catalog interface {
	Categories(ctx context.Context) ([]catalog.Category, error)
	FilteredProperties(ctx context.Context, filters catalog.PropertyFilters) ([]listing.Property, error)
	UpcomingProjects(ctx context.Context, city string) ([]listing.Project, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (orb.Point, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
	AutocompleteCities(ctx context.Context, query string) ([]geocode.Suggestion, error)
	PlaceDetails(ctx context.Context, placeID string) (geocode.Place, error)
}

type Locator interface {
	Current(ctx context.Context) (orb.Point, error)
}

type Deps struct {
	Catalog  Catalog
	Geocoder Geocoder
	Locator  Locator
	Tokens   catalog.TokenSource
}

type Options struct {
	DefaultCity     string
	MarkersPerPage  int
	SuggestionDelay time.Duration
	RegionDelay     time.Duration
	LocationTimeout time.Duration
}

func (o *Options) setDefaults() {
	if o.DefaultCity == "" {
		o.DefaultCity = "Ajmer"
	}
	if o.MarkersPerPage <= 0 {
		o.MarkersPerPage = 10
	}
	if o.SuggestionDelay <= 0 {
		o.SuggestionDelay = 300 * time.Millisecond
	}
	if o.RegionDelay <= 0 {
		o.RegionDelay = 100 * time.Millisecond
	}
	if o.LocationTimeout <= 0 {
		o.LocationTimeout = 10 * time.Second
	}
}

type Controller struct {
	deps Deps
	opts Options

	suggestDebounce *utils.Debouncer
	regionDebounce  *utils.Debouncer

	mu  sync.Mutex
	seq int64
	st  state
}

type state struct {
	initialized    bool
	loading        bool
	errMsg         string
	redirectSignIn bool

	region    geo.Region
	regionSet bool

	locationName string
	selectedCity string

	searchQuery     string
	suggestions     []geocode.Suggestion
	showSuggestions bool

	displayMode  DisplayMode
	propertyMode PropertyMode
	mapType      MapType

	categories          []catalog.Category
	selectedCategory    string
	selectedSubCategory string
	minPrice            string
	maxPrice            string
	sqftFrom            string
	sqftTo              string

	allProperties []listing.Property
	allProjects   []listing.Project
	filteredData  []listing.Entity
	visibleItems  []listing.Entity
	page          int
	hasMore       bool

	selected   listing.Entity
	detailOpen bool

	medianPrice float64
}

func New(deps Deps, opts Options) *Controller {
	opts.setDefaults()
	c := &Controller{
		deps:            deps,
		opts:            opts,
		suggestDebounce: utils.NewDebouncer(opts.SuggestionDelay),
		regionDebounce:  utils.NewDebouncer(opts.RegionDelay),
	}
	c.st.displayMode = DisplayBoth
	c.st.propertyMode = ModeSell
	c.st.mapType = MapHybrid
	c.st.page = 1
	c.st.hasMore = true
	c.st.locationName = opts.DefaultCity
	return c
}

// Initialize geocodes the starting city and runs the first fetch.
// Guarded: repeat calls are no-ops. It always ends in a usable region,
// falling back to the default city when anything fails.
func (c *Controller) Initialize() {
	c.mu.Lock()
	if c.st.initialized {
		c.mu.Unlock()
		return
	}
	c.st.initialized = true
	c.mu.Unlock()

	c.fetchCategories()
	c.initializeRegion()
}

func (c *Controller) fetchCategories() {
	categories, err := c.deps.Catalog.Categories(context.Background())
	if err != nil {
		if errors.Is(err, catalog.ErrUnauthenticated) {
			c.mu.Lock()
			c.st.redirectSignIn = true
			c.st.errMsg = signInMessage
			c.mu.Unlock()
			return
		}
		utils.Loge(errors.Wrap(err, "can't fetch categories"))
		return
	}
	c.mu.Lock()
	c.st.categories = categories
	c.mu.Unlock()
}

func (c *Controller) initializeRegion() {
	c.mu.Lock()
	c.st.loading = true
	c.mu.Unlock()

	city := c.opts.DefaultCity
	point, err := c.deps.Geocoder.Geocode(context.Background(), city)
	if err != nil {
		// missing key, geocode failure, network: all degrade to the
		// fixed default coordinates and carry on
		utils.Loge(errors.Wrap(err, "can't geocode initial city"))
		point = geo.DefaultPoint()
	}

	c.mu.Lock()
	c.st.region = geo.NewRegion(point, geo.CityDelta)
	c.st.regionSet = true
	c.st.locationName = city
	c.st.selectedCity = city
	c.mu.Unlock()

	c.fetchFilterData(city, "")
}

// Apply commits the filter sheet and refetches for the selected city.
func (c *Controller) Apply() {
	c.mu.Lock()
	city := c.st.selectedCity
	c.mu.Unlock()
	c.fetchFilterData(city, "")
}

// ApplyPropertyMode flips sell/rent and refetches immediately, without
// a separate apply step. A fetch already in flight makes it a no-op.
func (c *Controller) ApplyPropertyMode(mode PropertyMode) {
	c.mu.Lock()
	if c.st.loading {
		c.mu.Unlock()
		return
	}
	c.st.propertyMode = mode
	city := c.st.selectedCity
	if city == "" {
		city = c.st.locationName
	}
	if city == "" {
		city = c.opts.DefaultCity
	}
	c.mu.Unlock()

	c.fetchFilterData(city, mode)
}

// Reset clears every filter and search field, then re-runs the
// initialization flow: re-geocode the default city and refetch.
func (c *Controller) Reset() {
	c.suggestDebounce.Cancel()

	c.mu.Lock()
	c.st.selectedCity = ""
	c.st.propertyMode = ModeSell
	c.st.selectedCategory = ""
	c.st.selectedSubCategory = ""
	c.st.minPrice = ""
	c.st.maxPrice = ""
	c.st.sqftFrom = ""
	c.st.sqftTo = ""
	c.st.searchQuery = ""
	c.st.suggestions = nil
	c.st.showSuggestions = false
	c.mu.Unlock()

	c.initializeRegion()
}

// fetchFilterData is the single fetch path: it resets pagination,
// runs the properties and projects requests in parallel, and applies
// the results only if no newer fetch has been issued since. Either
// request failing aborts the whole operation; previous data stays.
func (c *Controller) fetchFilterData(city string, override PropertyMode) {
	token, err := c.deps.Tokens.Token()
	if err != nil || token == "" {
		c.mu.Lock()
		c.st.loading = false
		c.st.redirectSignIn = true
		c.st.errMsg = signInMessage
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.st.loading = true
	c.st.errMsg = ""
	c.st.page = 1
	c.st.hasMore = true
	mode := c.st.propertyMode
	if override != "" {
		mode = override
	}
	filters := catalog.PropertyFilters{
		City:        city,
		Category:    c.st.selectedCategory,
		SubCategory: c.st.selectedSubCategory,
		MinPrice:    c.st.minPrice,
		MaxPrice:    c.st.maxPrice,
		SqftFrom:    c.st.sqftFrom,
		SqftTo:      c.st.sqftTo,
		PropertyFor: string(mode),
	}
	c.mu.Unlock()

	var properties []listing.Property
	var projects []listing.Project
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		properties, err = c.deps.Catalog.FilteredProperties(ctx, filters)
		return errors.Wrap(err, "can't fetch properties")
	})
	g.Go(func() error {
		var err error
		projects, err = c.deps.Catalog.UpcomingProjects(ctx, city)
		return errors.Wrap(err, "can't fetch projects")
	})
	fetchErr := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// a newer intent superseded this fetch; discard silently
		return
	}
	c.st.loading = false
	if fetchErr != nil {
		c.applyFetchErrorLocked(fetchErr, city)
		return
	}

	c.st.allProperties = properties
	c.st.allProjects = projects
	if len(properties) == 0 && len(projects) == 0 {
		c.st.errMsg = noResultsMessage(city)
	} else if !c.st.regionSet {
		anchor := projects[0].Anchor()
		if len(properties) > 0 {
			anchor = properties[0].Anchor()
		}
		c.st.region = geo.NewRegion(anchor, geo.CityDelta)
		c.st.regionSet = true
	}
	c.recomputeDerivedLocked()
}

func (c *Controller) applyFetchErrorLocked(err error, city string) {
	switch {
	case errors.Is(err, catalog.ErrUnauthenticated):
		c.st.redirectSignIn = true
		c.st.errMsg = signInMessage
	case errors.Is(err, catalog.ErrNotFound):
		c.st.errMsg = noResultsMessage(city)
	case errors.Is(err, catalog.ErrNetwork):
		c.st.errMsg = "Network error. Please check your internet connection."
	default:
		utils.Loge(err)
		c.st.errMsg = "An unexpected error occurred. Please try again."
	}
}

// HandleRegionChange stores the viewport after a short debounce. It
// never refetches; panning only re-runs the local viewport filter.
func (c *Controller) HandleRegionChange(region geo.Region) {
	c.regionDebounce.Call(func() {
		c.mu.Lock()
		c.st.region = region
		c.st.regionSet = true
		c.recomputeVisibleLocked()
		c.mu.Unlock()
	})
}

// HandleMarkerPress selects an entity, recenters on its anchor at a
// tight zoom, and opens the detail sheet.
func (c *Controller) HandleMarkerPress(e listing.Entity) {
	c.mu.Lock()
	c.st.selected = e
	c.st.detailOpen = true
	c.st.region = geo.NewRegion(e.Anchor(), geo.FocusDelta)
	c.st.regionSet = true
	c.recomputeVisibleLocked()
	c.mu.Unlock()
}

func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.st.detailOpen = false
	c.st.selected = nil
	c.mu.Unlock()
}

// ViewSelected yields the navigation route for the selected entity,
// for the host to resolve.
func (c *Controller) ViewSelected() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.selected == nil {
		return "", false
	}
	return listing.Route(c.st.selected), true
}

// LoadMore advances the pagination cursor while more in-viewport
// entities remain beyond the current cutoff.
func (c *Controller) LoadMore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.hasMore {
		return
	}
	c.st.page++
	c.recomputeVisibleLocked()
}

func (c *Controller) SetDisplayMode(mode DisplayMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.displayMode = mode
	c.recomputeDerivedLocked()
}

func (c *Controller) ToggleMapType() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.mapType == MapHybrid {
		c.st.mapType = MapStandard
	} else {
		c.st.mapType = MapHybrid
	}
}

// SetCategory also clears the subcategory; the options depend on it.
func (c *Controller) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.selectedCategory = category
	c.st.selectedSubCategory = ""
}

func (c *Controller) SetSubCategory(sub string) { c.setField(&c.st.selectedSubCategory, sub) }
func (c *Controller) SetMinPrice(v string)      { c.setField(&c.st.minPrice, v) }
func (c *Controller) SetMaxPrice(v string)      { c.setField(&c.st.maxPrice, v) }
func (c *Controller) SetSqftFrom(v string)      { c.setField(&c.st.sqftFrom, v) }
func (c *Controller) SetSqftTo(v string)        { c.setField(&c.st.sqftTo, v) }

func (c *Controller) setField(field *string, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*field = value
}

// recomputeDerivedLocked rebuilds filteredData from the raw lists and
// the display mode. The properties list is already server-filtered by
// property mode, so no local filtering happens here.
func (c *Controller) recomputeDerivedLocked() {
	switch c.st.displayMode {
	case DisplayProperties:
		c.st.filteredData = propertyEntities(c.st.allProperties)
	case DisplayProjects:
		c.st.filteredData = projectEntities(c.st.allProjects)
	default:
		merged := propertyEntities(c.st.allProperties)
		c.st.filteredData = append(merged, projectEntities(c.st.allProjects)...)
	}
	c.recomputeVisibleLocked()
}

func (c *Controller) recomputeVisibleLocked() {
	if !c.st.regionSet || len(c.st.filteredData) == 0 {
		c.st.visibleItems = nil
		c.st.hasMore = false
		c.st.medianPrice = 0
		return
	}
	inView := listing.InView(c.st.filteredData, c.st.region)
	c.st.visibleItems, c.st.hasMore = listing.Paginate(inView, c.st.page, c.opts.MarkersPerPage)
	c.st.medianPrice = medianAskingPrice(c.st.visibleItems)
}

func propertyEntities(properties []listing.Property) []listing.Entity {
	entities := make([]listing.Entity, 0, len(properties))
	for _, p := range properties {
		entities = append(entities, p)
	}
	return entities
}

func projectEntities(projects []listing.Project) []listing.Entity {
	entities := make([]listing.Entity, 0, len(projects))
	for _, p := range projects {
		entities = append(entities, p)
	}
	return entities
}

const signInMessage = "Please sign in to view properties."

func noResultsMessage(city string) string {
	if city == "" {
		city = "the selected area"
	}
	return fmt.Sprintf("No results found for %s.", city)
}
