package discovery

import (
	"github.com/JovanaT99/eventsApp/models"
	"github.com/JovanaT99/eventsApp/predicate"
)

type Point struct {
	Lat, Lng float64
}

// Distance is the haversine great-circle distance in meters on a sphere of
// radius predicate.EarthRadiusMeters.
func Distance(a, b Point) float64 {
	return predicate.Haversine(a.Lat, a.Lng, b.Lat, b.Lng)
}

// GeoFilter restricts results to a circle. RadiusKm is kilometers.
type GeoFilter struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

func (g GeoFilter) Center() Point { return Point{Lat: g.Lat, Lng: g.Lng} }

func (g GeoFilter) RadiusMeters() float64 { return g.RadiusKm * 1000 }

// Predicate is the store-side equivalent of WithinRadius.
func (g GeoFilter) Predicate() predicate.Within {
	return predicate.Within{Lat: g.Lat, Lng: g.Lng, RadiusMeters: g.RadiusMeters()}
}

// WithinRadius keeps the events at most g.RadiusKm from the filter center,
// preserving their order. A nil filter keeps everything.
func WithinRadius(events []models.Event, g *GeoFilter) []models.Event {
	if g == nil {
		return events
	}
	center := g.Center()
	limit := g.RadiusMeters()

	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if Distance(center, Point{Lat: e.Lat, Lng: e.Lng}) <= limit {
			out = append(out, e)
		}
	}
	return out
}
