package session

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"landsquire.in/estatemap/listing"
)

// medianAskingPrice summarizes the asking prices of the visible
// properties. Projects carry no price and are skipped, as are
// properties with no usable price.
func medianAskingPrice(items []listing.Entity) float64 {
	var prices []float64
	for _, item := range items {
		p, ok := item.(listing.Property)
		if !ok || p.Price <= 0 {
			continue
		}
		prices = append(prices, p.Price)
	}
	if len(prices) == 0 {
		return 0
	}
	sort.Float64s(prices)
	return stat.Quantile(0.5, stat.Empirical, prices, nil)
}
