package analytics

import (
	"context"
	"fmt"
	"time"

	"vfx-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SnapshotRepository interface {
	Create(ctx context.Context, s *StatsSnapshot) error
	List(ctx context.Context, organization string, limit int64) ([]StatsSnapshot, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type SnapshotRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewSnapshotRepository(mongodb *database.MongodbDB) SnapshotRepository {
	return &SnapshotRepositoryImpl{
		Collection: mongodb.DB.Collection("stats_snapshots"),
	}
}

func (r *SnapshotRepositoryImpl) Create(ctx context.Context, s *StatsSnapshot) error {
	if _, err := r.Collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert stats snapshot: %w", err)
	}
	return nil
}

// List returns the newest snapshots first.
func (r *SnapshotRepositoryImpl) List(ctx context.Context, organization string, limit int64) ([]StatsSnapshot, error) {
	opts := options.Find().SetSort(bson.M{"takenAt": -1}).SetLimit(limit)
	cursor, err := r.Collection.Find(ctx, bson.M{"organization": organization}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	snapshots := []StatsSnapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *SnapshotRepositoryImpl) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, bson.M{"takenAt": bson.M{"$lt": before}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *SnapshotRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "organization", Value: 1}, {Key: "takenAt", Value: -1}},
		Options: options.Index().SetName("idx_org_taken"),
	})
	return err
}
