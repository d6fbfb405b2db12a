package audit

import (
	"context"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	Create(ctx context.Context, log models.AuditLog) error
	List(ctx context.Context, organization string, filters map[string]string, limit, offset int64) ([]models.AuditLog, int64, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type AuditRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewAuditRepository(mongodb *database.MongodbDB) AuditRepository {
	return &AuditRepositoryImpl{
		Collection: mongodb.DB.Collection("audit_logs"),
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, log models.AuditLog) error {
	_, err := r.Collection.InsertOne(ctx, log)
	return err
}

func (r *AuditRepositoryImpl) List(ctx context.Context, organization string, filters map[string]string, limit, offset int64) ([]models.AuditLog, int64, error) {
	query := bson.M{"organization": organization}
	for k, v := range filters {
		if v == "" {
			continue
		}
		query[k] = v
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetLimit(limit).SetSkip(offset).SetSort(bson.M{"timestamp": -1})
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	logs := []models.AuditLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// DeleteBefore removes entries of every organization older than before.
func (r *AuditRepositoryImpl) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": before}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *AuditRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "organization", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_org_timestamp"),
	})
	return err
}
