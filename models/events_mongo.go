package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JovanaT99/eventsApp/predicate"
)

type mongoEventRepo struct {
	col *mongo.Collection
}

func NewMongoEventRepository(col *mongo.Collection) EventRepository {
	return &mongoEventRepo{col: col}
}

// EnsureEventIndexes creates the unique id index and the 2dsphere index
// used by store-side geofiltering.
func EnsureEventIndexes(ctx context.Context, col *mongo.Collection) error {
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "geo", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "startAt", Value: 1}}},
	})
	return err
}

func (r *mongoEventRepo) Find(ctx context.Context, p predicate.Predicate) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	filter, err := MongoFilter(p)
	if err != nil {
		return nil, err
	}

	cur, err := r.col.Find(ctx, filter, findOptions())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Event{}
	for cur.Next(ctx) {
		var e Event
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

// findOptions fixes store order to creation order, ties broken by id.
func findOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}})
}

func (r *mongoEventRepo) GetByID(ctx context.Context, id string) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var e Event
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

func (r *mongoEventRepo) Create(ctx context.Context, e *Event) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if e.Geo == nil {
		e.Geo = NewGeoPoint(e.Lat, e.Lng)
	}
	_, err := r.col.InsertOne(ctx, e)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// MongoFilter translates a predicate tree into a Mongo query document.
func MongoFilter(p predicate.Predicate) (bson.M, error) {
	switch n := p.(type) {
	case nil, predicate.MatchAll:
		return bson.M{}, nil
	case predicate.Equals:
		return bson.M{string(n.Field): n.Value}, nil
	case predicate.Contains:
		return bson.M{string(n.Field): primitive.Regex{Pattern: regexp.QuoteMeta(n.Value), Options: "i"}}, nil
	case predicate.TextMatch:
		return MongoFilter(n.Expand())
	case predicate.And:
		return combine("$and", n)
	case predicate.Or:
		if len(n) == 0 {
			// an empty $or is rejected by the server
			return bson.M{"_id": bson.M{"$exists": false}}, nil
		}
		return combine("$or", n)
	case predicate.EndsAfter:
		end := bson.M{"$add": bson.A{"$startAt", bson.M{"$multiply": bson.A{"$duration", 3600000}}}}
		return bson.M{"$expr": bson.M{"$gte": bson.A{end, n.Time}}}, nil
	case predicate.Within:
		radians := n.RadiusMeters / predicate.EarthRadiusMeters
		return bson.M{"geo": bson.M{"$geoWithin": bson.M{
			"$centerSphere": bson.A{bson.A{n.Lng, n.Lat}, radians},
		}}}, nil
	}
	return nil, fmt.Errorf("mongo filter: unsupported predicate %T", p)
}

func combine(op string, children []predicate.Predicate) (bson.M, error) {
	if len(children) == 0 {
		return bson.M{}, nil
	}
	parts := make(bson.A, 0, len(children))
	for _, c := range children {
		f, err := MongoFilter(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, f)
	}
	return bson.M{op: parts}, nil
}
