package session

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/locate"
	"landsquire.in/estatemap/utils"
)

// GetCurrentLocation centers the map on the device position and
// refetches for the reverse-geocoded city. Every failure mode falls
// back to the default city so the map never ends up empty.
func (c *Controller) GetCurrentLocation() {
	c.mu.Lock()
	c.st.loading = true
	c.st.errMsg = ""
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.LocationTimeout)
	defer cancel()

	point, err := c.deps.Locator.Current(ctx)
	if err != nil {
		c.fallBackToDefaultCity(err)
		return
	}

	c.mu.Lock()
	c.st.region = geo.NewRegion(point, geo.CityDelta)
	c.st.regionSet = true
	c.mu.Unlock()

	city, err := c.deps.Geocoder.ReverseGeocode(context.Background(), point.Lat(), point.Lon())
	if err != nil {
		utils.Logde(errors.Wrap(err, "can't reverse geocode current location"))
		c.mu.Lock()
		c.st.locationName = "Unknown Location"
		c.mu.Unlock()
		c.fetchFilterData(c.opts.DefaultCity, "")
		return
	}

	c.mu.Lock()
	c.st.locationName = city
	c.st.selectedCity = city
	c.mu.Unlock()

	c.fetchFilterData(city, "")
}

// fallBackToDefaultCity fetches the default city and then surfaces why
// the device position was unusable. The message is set after the fetch
// so the fetch's own error reset does not wipe it.
func (c *Controller) fallBackToDefaultCity(cause error) {
	city := c.opts.DefaultCity

	var msg string
	switch {
	case errors.Is(cause, locate.ErrDisabled):
		msg = fmt.Sprintf("Location permission denied. Showing %s.", city)
	case errors.Is(cause, context.DeadlineExceeded):
		msg = fmt.Sprintf("Location request timed out. Showing %s.", city)
	default:
		utils.Logde(errors.Wrap(cause, "can't read current location"))
		msg = fmt.Sprintf("Current location unavailable. Showing %s.", city)
	}

	c.fetchFilterData(city, "")

	c.mu.Lock()
	if c.st.errMsg == "" {
		c.st.errMsg = msg
	}
	c.mu.Unlock()
}
