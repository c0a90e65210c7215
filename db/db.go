package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JovanaT99/eventsApp/models"
)

// OpenPostgres connects, pings and creates the relational tables.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	sqldb.SetMaxOpenConns(20)
	sqldb.SetMaxIdleConns(10)

	if err := CreateTables(ctx, sqldb); err != nil {
		sqldb.Close()
		return nil, err
	}
	return sqldb, nil
}

// Events live in Mongo, so event_id columns carry the event UUID without a
// foreign key; existence is checked by the services before writing.
var schema = []struct{ name, ddl string }{
	{"users", `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		nickname TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		image_url TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		company_id BIGINT,
		reputation INTEGER NOT NULL DEFAULT 0,
		phone_number TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`},
	{"categories", `
	CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		priority INTEGER NOT NULL,
		sub_categories TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`},
	{"event_attendance", `
	CREATE TABLE IF NOT EXISTS event_attendance (
		event_id UUID NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		status TEXT NOT NULL CHECK (status IN ('attending', 'notAttending')),
		attendance_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (event_id, user_id)
	);`},
	{"event_messages", `
	CREATE TABLE IF NOT EXISTS event_messages (
		id UUID PRIMARY KEY,
		event_id UUID NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		attendance_only BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`},
}

func CreateTables(ctx context.Context, sqldb *sql.DB) error {
	for _, t := range schema {
		if _, err := sqldb.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create %s table: %w", t.name, err)
		}
	}
	return nil
}

// OpenMongo connects, pings and returns the events collection with its
// indexes in place. Callers own the returned client.
func OpenMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo.Connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	col := client.Database(database).Collection("events")
	if err := models.EnsureEventIndexes(ctx, col); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo indexes: %w", err)
	}
	return client, col, nil
}
