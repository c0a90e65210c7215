// Package predicate describes which events qualify for a query.
//
// A Predicate is a closed tagged type: only the node types declared here
// implement it. Stores translate the tree into their own query language;
// Match evaluates it in memory against anything that exposes its fields
// through Subject.
package predicate

import (
	"math"
	"strings"
	"time"
)

// Field names a queryable event attribute. The values double as the
// document keys used by the Mongo event store.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldSubCategory Field = "subCategory"
	FieldCategoryID  Field = "categoryId"
	FieldStartAt     Field = "startAt"
	FieldDuration    Field = "duration"
	FieldLat         Field = "lat"
	FieldLng         Field = "lng"
)

// Subject is a record a predicate can be evaluated against.
type Subject interface {
	Lookup(f Field) (any, bool)
}

type Predicate interface {
	predicate()
}

// MatchAll accepts every record.
type MatchAll struct{}

// Equals is an exact comparison on a single field.
type Equals struct {
	Field Field
	Value any
}

// Contains is a case-insensitive substring match on a text field.
type Contains struct {
	Field Field
	Value string
}

// TextMatch is free-text search: Query must appear (case-insensitively)
// in at least one of Fields.
type TextMatch struct {
	Query  string
	Fields []Field
}

// Expand rewrites the free-text node as a disjunction of Contains nodes.
func (t TextMatch) Expand() Or {
	out := make(Or, 0, len(t.Fields))
	for _, f := range t.Fields {
		out = append(out, Contains{Field: f, Value: t.Query})
	}
	return out
}

// And holds when every child holds. An empty And holds.
type And []Predicate

// Or holds when at least one child holds. An empty Or never holds.
type Or []Predicate

// EndsAfter holds for events whose end (startAt + duration hours) is not
// before Time.
type EndsAfter struct {
	Time time.Time
}

// Within holds for events whose coordinates lie inside the circle of
// RadiusMeters around (Lat, Lng).
type Within struct {
	Lat, Lng     float64
	RadiusMeters float64
}

func (MatchAll) predicate()  {}
func (Equals) predicate()    {}
func (Contains) predicate()  {}
func (TextMatch) predicate() {}
func (And) predicate()       {}
func (Or) predicate()        {}
func (EndsAfter) predicate() {}
func (Within) predicate()    {}

// Conjoin ANDs the given predicates, dropping MatchAll nodes. It returns
// MatchAll when nothing is left and the single predicate when only one is.
func Conjoin(ps ...Predicate) Predicate {
	var out And
	for _, p := range ps {
		if p == nil {
			continue
		}
		if _, ok := p.(MatchAll); ok {
			continue
		}
		out = append(out, p)
	}
	switch len(out) {
	case 0:
		return MatchAll{}
	case 1:
		return out[0]
	}
	return out
}

// Match reports whether s satisfies p.
func Match(p Predicate, s Subject) bool {
	switch n := p.(type) {
	case nil, MatchAll:
		return true
	case Equals:
		v, ok := s.Lookup(n.Field)
		return ok && equal(v, n.Value)
	case Contains:
		v, ok := s.Lookup(n.Field)
		if !ok {
			return false
		}
		str, ok := v.(string)
		return ok && strings.Contains(strings.ToLower(str), strings.ToLower(n.Value))
	case TextMatch:
		return Match(n.Expand(), s)
	case And:
		for _, c := range n {
			if !Match(c, s) {
				return false
			}
		}
		return true
	case Or:
		for _, c := range n {
			if Match(c, s) {
				return true
			}
		}
		return false
	case EndsAfter:
		end, ok := endOf(s)
		return ok && !end.Before(n.Time)
	case Within:
		lat, ok1 := number(s, FieldLat)
		lng, ok2 := number(s, FieldLng)
		if !ok1 || !ok2 {
			return false
		}
		return Haversine(n.Lat, n.Lng, lat, lng) <= n.RadiusMeters
	}
	return false
}

// EarthRadiusMeters is the spherical earth radius used for every distance
// computed by this module.
const EarthRadiusMeters = 6378137.0

// Haversine returns the great-circle distance in meters between two
// coordinates given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	dφ := (lat2 - lat1) * math.Pi / 180
	dλ := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dφ/2)*math.Sin(dφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(dλ/2)*math.Sin(dλ/2)
	if a > 1 {
		a = 1
	}
	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(a))
}

func endOf(s Subject) (time.Time, bool) {
	v, ok := s.Lookup(FieldStartAt)
	if !ok {
		return time.Time{}, false
	}
	start, ok := v.(time.Time)
	if !ok {
		return time.Time{}, false
	}
	hours, ok := number(s, FieldDuration)
	if !ok {
		return time.Time{}, false
	}
	return start.Add(time.Duration(hours * float64(time.Hour))), true
}

func number(s Subject, f Field) (float64, bool) {
	v, ok := s.Lookup(f)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func equal(a, b any) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
