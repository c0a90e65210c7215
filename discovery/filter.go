package discovery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JovanaT99/eventsApp/apperrors"
	"github.com/JovanaT99/eventsApp/predicate"
	"github.com/JovanaT99/eventsApp/validation"
)

// Query is a search request as it arrives on the URL. Every field is
// optional.
type Query struct {
	// Content matches, case-insensitively, as a substring of the event name
	// or description.
	Content string `form:"content"`

	// CategoryID narrows results to one category.
	CategoryID string `form:"categoryId" validate:"omitempty,numeric"`

	// SubCategory matches, case-insensitively, as a substring of the event
	// subcategory label.
	SubCategory string `form:"subcategory"`

	// Order is a list of ranking modes, repeated or comma separated. The
	// first is the primary key; later ones break ties.
	Order []string `form:"order" validate:"dive,oneof=peopleLeast peopleMost startingSoon startingLast"`

	// Lat, Lng and Radius (km) form a geofilter. It applies, and is
	// validated, only when all three are present; otherwise all three are
	// ignored.
	Lat    string `form:"lat"`
	Lng    string `form:"lng"`
	Radius string `form:"radius"`
}

type geoInput struct {
	Lat    string `form:"lat" validate:"latitude"`
	Lng    string `form:"lng" validate:"longitude"`
	Radius string `form:"radius" validate:"numeric"`
}

// Compiled is a validated, normalized Query.
type Compiled struct {
	Predicate predicate.Predicate
	Order     []OrderMode
	Geo       *GeoFilter
}

// Compile validates q and builds its predicate, ordering and geofilter.
// Validation failures are reported as BadRequest naming the field.
func Compile(q Query) (Compiled, error) {
	q.Content = strings.TrimSpace(q.Content)
	q.SubCategory = strings.TrimSpace(q.SubCategory)
	q.Order = splitOrder(q.Order)

	if fe := validation.Struct(q); fe != nil {
		return Compiled{}, apperrors.BadRequest(fe.Message)
	}

	var parts []predicate.Predicate
	if q.Content != "" {
		parts = append(parts, predicate.TextMatch{
			Query:  q.Content,
			Fields: []predicate.Field{predicate.FieldName, predicate.FieldDescription},
		})
	}
	if q.CategoryID != "" {
		id, err := strconv.ParseInt(q.CategoryID, 10, 64)
		if err != nil {
			return Compiled{}, apperrors.BadRequest("categoryId must be an integer")
		}
		parts = append(parts, predicate.Equals{Field: predicate.FieldCategoryID, Value: id})
	}
	if q.SubCategory != "" {
		parts = append(parts, predicate.Contains{Field: predicate.FieldSubCategory, Value: q.SubCategory})
	}

	geo, err := compileGeo(q)
	if err != nil {
		return Compiled{}, err
	}

	order := make([]OrderMode, 0, len(q.Order))
	for _, o := range q.Order {
		order = append(order, OrderMode(o))
	}

	return Compiled{
		Predicate: predicate.Conjoin(parts...),
		Order:     order,
		Geo:       geo,
	}, nil
}

func compileGeo(q Query) (*GeoFilter, error) {
	if q.Lat == "" || q.Lng == "" || q.Radius == "" {
		return nil, nil
	}
	if fe := validation.Struct(geoInput{Lat: q.Lat, Lng: q.Lng, Radius: q.Radius}); fe != nil {
		return nil, apperrors.BadRequest(fe.Message)
	}
	lat, err := strconv.ParseFloat(q.Lat, 64)
	if err != nil {
		return nil, apperrors.BadRequest("lat must be numeric")
	}
	lng, err := strconv.ParseFloat(q.Lng, 64)
	if err != nil {
		return nil, apperrors.BadRequest("lng must be numeric")
	}
	radius, err := strconv.ParseFloat(q.Radius, 64)
	if err != nil {
		return nil, apperrors.BadRequest("radius must be numeric")
	}
	if radius < 0 {
		return nil, apperrors.BadRequest(fmt.Sprintf("radius must be at least 0, got %v", radius))
	}
	return &GeoFilter{Lat: lat, Lng: lng, RadiusKm: radius}, nil
}

func splitOrder(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, o := range strings.Split(r, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
