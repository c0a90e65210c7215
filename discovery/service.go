// Package discovery turns search requests into ordered, distance-filtered
// event lists.
package discovery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JovanaT99/eventsApp/apperrors"
	"github.com/JovanaT99/eventsApp/models"
	"github.com/JovanaT99/eventsApp/predicate"
)

// GeoMode selects where the radius filter runs.
type GeoMode string

const (
	// GeoMemory fetches by the other predicates and trims by haversine
	// distance in process.
	GeoMemory GeoMode = "memory"
	// GeoStore pushes a predicate.Within to the event store. Stores with
	// their own earth model may disagree with GeoMemory at the boundary.
	GeoStore GeoMode = "store"
)

func ParseGeoMode(s string) (GeoMode, error) {
	switch GeoMode(s) {
	case "", GeoMemory:
		return GeoMemory, nil
	case GeoStore:
		return GeoStore, nil
	}
	return "", fmt.Errorf("unknown geo mode %q", s)
}

type Service struct {
	events  models.EventRepository
	geoMode GeoMode
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Service)

func WithGeoMode(m GeoMode) Option { return func(s *Service) { s.geoMode = m } }

// WithClock replaces time.Now, which decides what counts as active.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

func NewService(events models.EventRepository, opts ...Option) *Service {
	s := &Service{
		events:  events,
		geoMode: GeoMemory,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search validates q, fetches the matching events, applies the geofilter
// and ranks the result. The returned slice is never nil.
func (s *Service) Search(ctx context.Context, q Query) ([]models.Event, error) {
	c, err := Compile(q)
	if err != nil {
		queriesTotal.WithLabelValues("search", "invalid").Inc()
		return nil, err
	}

	p := c.Predicate
	if c.Geo != nil && s.geoMode == GeoStore {
		p = predicate.Conjoin(p, c.Geo.Predicate())
	}

	events, err := s.events.Find(ctx, p)
	if err != nil {
		queriesTotal.WithLabelValues("search", "error").Inc()
		s.log.Error("event search failed", zap.Error(err))
		return nil, apperrors.Internal("Could not fetch events", err)
	}

	if c.Geo != nil && s.geoMode == GeoMemory {
		before := len(events)
		events = WithinRadius(events, c.Geo)
		geoDropped.Add(float64(before - len(events)))
	}

	events = Rank(events, c.Order)
	if events == nil {
		events = []models.Event{}
	}

	queriesTotal.WithLabelValues("search", "ok").Inc()
	resultSize.WithLabelValues("search").Observe(float64(len(events)))
	s.log.Debug("event search",
		zap.String("content", q.Content),
		zap.Any("order", c.Order),
		zap.Bool("geo", c.Geo != nil),
		zap.Int("results", len(events)),
	)
	return events, nil
}

// Active returns the events whose end (startAt + duration hours) is not
// before the current instant, read at call time.
func (s *Service) Active(ctx context.Context) ([]models.Event, error) {
	events, err := s.events.Find(ctx, predicate.EndsAfter{Time: s.now()})
	if err != nil {
		queriesTotal.WithLabelValues("active", "error").Inc()
		s.log.Error("active events query failed", zap.Error(err))
		return nil, apperrors.Internal("Could not fetch events", err)
	}
	if events == nil {
		events = []models.Event{}
	}
	queriesTotal.WithLabelValues("active", "ok").Inc()
	resultSize.WithLabelValues("active").Observe(float64(len(events)))
	return events, nil
}
