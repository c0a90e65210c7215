package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JovanaT99/eventsApp/models"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	for _, p := range []Point{{0, 0}, {44.8176, 20.4569}, {-33.8688, 151.2093}, {89.9, -179.9}} {
		assert.Equal(t, 0.0, Distance(p, p), "point %v", p)
	}
}

func TestDistance_KnownCities(t *testing.T) {
	belgrade := Point{Lat: 44.8176, Lng: 20.4569}
	noviSad := Point{Lat: 45.2671, Lng: 19.8335}

	d := Distance(belgrade, noviSad)
	assert.InDelta(t, 70_000, d, 2_000)
	assert.Equal(t, d, Distance(noviSad, belgrade), "distance is symmetric")
}

func geoEvents() []models.Event {
	return []models.Event{
		{ID: "center", Lat: 44.8176, Lng: 20.4569},
		{ID: "near", Lat: 44.8300, Lng: 20.4600},   // ~1.4 km
		{ID: "novi-sad", Lat: 45.2671, Lng: 19.8335}, // ~70 km
		{ID: "far", Lat: 48.2082, Lng: 16.3738},      // Vienna
	}
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestWithinRadius_NilIsIdentity(t *testing.T) {
	in := geoEvents()
	assert.Equal(t, ids(in), ids(WithinRadius(in, nil)))
}

func TestWithinRadius_ZeroKeepsOnlyCoincident(t *testing.T) {
	g := &GeoFilter{Lat: 44.8176, Lng: 20.4569, RadiusKm: 0}
	assert.Equal(t, []string{"center"}, ids(WithinRadius(geoEvents(), g)))
}

func TestWithinRadius_PreservesOrder(t *testing.T) {
	in := geoEvents()
	in[0], in[2] = in[2], in[0]

	g := &GeoFilter{Lat: 44.8176, Lng: 20.4569, RadiusKm: 100}
	assert.Equal(t, []string{"novi-sad", "near", "center"}, ids(WithinRadius(in, g)))
}

func TestWithinRadius_Monotonic(t *testing.T) {
	var prev []string
	for _, r := range []float64{0, 0.5, 2, 50, 100, 500, 1000, 20000} {
		got := ids(WithinRadius(geoEvents(), &GeoFilter{Lat: 44.8176, Lng: 20.4569, RadiusKm: r}))
		for _, id := range prev {
			require.Contains(t, got, id, "radius %v dropped %s", r, id)
		}
		prev = got
	}
	assert.Len(t, prev, 4)
}

func TestGeoFilter_PredicateUsesMeters(t *testing.T) {
	p := GeoFilter{Lat: 1, Lng: 2, RadiusKm: 3.5}.Predicate()
	assert.Equal(t, 3500.0, p.RadiusMeters)
	assert.Equal(t, 1.0, p.Lat)
	assert.Equal(t, 2.0, p.Lng)
}
