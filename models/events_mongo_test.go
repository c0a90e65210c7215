package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/JovanaT99/eventsApp/predicate"
)

func TestMongoFilter_MatchAll(t *testing.T) {
	f, err := MongoFilter(predicate.MatchAll{})
	require.NoError(t, err)
	assert.Equal(t, bson.M{}, f)
}

func TestMongoFilter_ContentAndCategory(t *testing.T) {
	p := predicate.And{
		predicate.TextMatch{Query: "a.b", Fields: []predicate.Field{predicate.FieldName, predicate.FieldDescription}},
		predicate.Equals{Field: predicate.FieldCategoryID, Value: int64(2)},
	}

	f, err := MongoFilter(p)
	require.NoError(t, err)

	want := bson.M{"$and": bson.A{
		bson.M{"$or": bson.A{
			bson.M{"name": primitive.Regex{Pattern: `a\.b`, Options: "i"}},
			bson.M{"description": primitive.Regex{Pattern: `a\.b`, Options: "i"}},
		}},
		bson.M{"categoryId": int64(2)},
	}}
	assert.Equal(t, want, f)
}

func TestMongoFilter_EndsAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	f, err := MongoFilter(predicate.EndsAfter{Time: now})
	require.NoError(t, err)

	expr := f["$expr"].(bson.M)["$gte"].(bson.A)
	assert.Equal(t, now, expr[1])
}

func TestMongoFilter_WithinUsesRadians(t *testing.T) {
	f, err := MongoFilter(predicate.Within{Lat: 45, Lng: 19, RadiusMeters: predicate.EarthRadiusMeters})
	require.NoError(t, err)

	sphere := f["geo"].(bson.M)["$geoWithin"].(bson.M)["$centerSphere"].(bson.A)
	assert.Equal(t, bson.A{19.0, 45.0}, sphere[0], "GeoJSON order is [lng, lat]")
	assert.Equal(t, 1.0, sphere[1])
}

func TestMongoFilter_EmptyOrMatchesNothing(t *testing.T) {
	f, err := MongoFilter(predicate.Or{})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": bson.M{"$exists": false}}, f)
}

func TestNewGeoPoint_LngFirst(t *testing.T) {
	g := NewGeoPoint(44.8, 20.4)
	assert.Equal(t, "Point", g.Type)
	assert.Equal(t, [2]float64{20.4, 44.8}, g.Coordinates)
}

func TestFindOptions_CreationOrderThenID(t *testing.T) {
	want := bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}}
	assert.Equal(t, want, findOptions().Sort)
}
