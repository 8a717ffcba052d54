package sinks

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"go.nownabe.dev/fleetloader"
)

type collection interface {
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// MongoSink replaces every document of a collection.
type MongoSink struct {
	// Rename maps column names to document field names.
	Rename map[string]string

	coll collection
}

var _ fleetloader.Sink = (*MongoSink)(nil)

// NewMongoSink connects to uri and targets database.collection.
func NewMongoSink(ctx context.Context, uri, database, coll string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, xerrors.Errorf("failed to connect to mongodb: %w", err)
	}

	return &MongoSink{coll: client.Database(database).Collection(coll)}, nil
}

// Replace deletes all documents, then inserts one document per row.
func (s *MongoSink) Replace(ctx context.Context, t *fleetloader.Table) error {
	l := log.Ctx(ctx)

	del, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return xerrors.Errorf("failed to delete documents: %w", err)
	}
	l.Debug().Int64("deleted", del.DeletedCount).Msg("documents deleted")

	records := t.Records(s.Rename)
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, len(records))
	for i, r := range records {
		docs[i] = bson.M(r)
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return xerrors.Errorf("failed to insert documents: %w", err)
	}

	l.Info().Int("documents", len(docs)).Msg("sink replaced")

	return nil
}
