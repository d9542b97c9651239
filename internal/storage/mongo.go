package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps the latest document of every department in MongoDB, one
// record per department.
type Store struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	log        *slog.Logger
}

// New connects to uri. With access false it returns a no-op store.
func New(ctx context.Context, uri, database string, access bool, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	if !access {
		return &Store{log: log}, nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	if database == "" {
		database = "timetables"
	}
	return &Store{
		Client:     client,
		Collection: client.Database(database).Collection("departments"),
		log:        log,
	}, nil
}

// Save replaces the department's record with snap.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	if s.Client == nil {
		s.log.Debug("skipping mongodb save: no client", "department", snap.Department)
		return nil
	}

	// store the published layout so clients can read records directly
	raw, err := json.Marshal(snap.Document)
	if err != nil {
		return err
	}
	var body bson.M
	if err := bson.UnmarshalExtJSON(raw, false, &body); err != nil {
		return fmt.Errorf("convert document: %w", err)
	}

	record := bson.M{
		"department": snap.Department,
		"url":        body["url"],
		"timetable":  body["timetable"],
		"run_id":     snap.RunID,
		"fetched_at": snap.FetchedAt,
	}
	_, err = s.Collection.ReplaceOne(ctx,
		bson.M{"department": snap.Department},
		record,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongodb save %s: %w", snap.Department, err)
	}
	s.log.Info("mongodb saved", "department", snap.Department, "run_id", snap.RunID)
	return nil
}

func (s *Store) Close() error {
	if s.Client != nil {
		return s.Client.Disconnect(context.Background())
	}
	return nil
}
