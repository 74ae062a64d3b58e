// Package matching picks the partner that should handle a waste request.
package matching

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"agriloop/entities"
)

// Strategy chooses one partner from the directory, given in directory order.
// ok is false only when partners is empty.
type Strategy interface {
	Name() string
	Pick(req entities.WasteRequest, partners []entities.Partner) (p entities.Partner, ok bool)
}

const (
	NameFirstAvailable = "first"
	NameNearest        = "nearest"
)

// FirstAvailable takes the first partner in the directory regardless of
// distance, capacity or rating.
type FirstAvailable struct{}

func (FirstAvailable) Name() string { return NameFirstAvailable }

func (FirstAvailable) Pick(_ entities.WasteRequest, partners []entities.Partner) (entities.Partner, bool) {
	if len(partners) == 0 {
		return entities.Partner{}, false
	}
	return partners[0], true
}

// Nearest takes the partner closest to the pickup point. Partners whose daily
// capacity is below the request quantity are skipped unless none can take it.
// Ties keep directory order.
type Nearest struct{}

func (Nearest) Name() string { return NameNearest }

func (Nearest) Pick(req entities.WasteRequest, partners []entities.Partner) (entities.Partner, bool) {
	candidates := make([]entities.Partner, 0, len(partners))
	for _, p := range partners {
		if p.CapacityKgPerDay >= req.QuantityKg {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = partners
	}
	if len(candidates) == 0 {
		return entities.Partner{}, false
	}

	origin := orb.Point{req.Longitude, req.Latitude}
	best, bestDist := candidates[0], geo.DistanceHaversine(origin, point(candidates[0]))
	for _, p := range candidates[1:] {
		if d := geo.DistanceHaversine(origin, point(p)); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}

func point(p entities.Partner) orb.Point { return orb.Point{p.Longitude, p.Latitude} }

// DistanceKm is the great-circle distance between a request and a partner.
func DistanceKm(req entities.WasteRequest, p entities.Partner) float64 {
	return geo.DistanceHaversine(orb.Point{req.Longitude, req.Latitude}, point(p)) / 1000
}

// ByName resolves a MATCH_STRATEGY value; empty means first.
func ByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameFirstAvailable:
		return FirstAvailable{}, nil
	case NameNearest:
		return Nearest{}, nil
	}
	return nil, fmt.Errorf("unknown match strategy %q", name)
}
