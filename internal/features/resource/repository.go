package resource

import (
	"context"
	"errors"
	"fmt"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResourceRepository interface {
	Create(ctx context.Context, r *Resource) error
	FindByID(ctx context.Context, organization string, id primitive.ObjectID) (*Resource, error)
	List(ctx context.Context, organization, resourceType string, limit, offset int64) ([]Resource, int64, error)
	Replace(ctx context.Context, r *Resource) error
	Delete(ctx context.Context, organization string, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type ResourceRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewResourceRepository(mongodb *database.MongodbDB) ResourceRepository {
	return &ResourceRepositoryImpl{
		Collection: mongodb.DB.Collection("resources"),
	}
}

func (r *ResourceRepositoryImpl) Create(ctx context.Context, res *Resource) error {
	if _, err := r.Collection.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (r *ResourceRepositoryImpl) FindByID(ctx context.Context, organization string, id primitive.ObjectID) (*Resource, error) {
	var res Resource
	err := r.Collection.FindOne(ctx, bson.M{"_id": id, "organization": organization}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepositoryImpl) List(ctx context.Context, organization, resourceType string, limit, offset int64) ([]Resource, int64, error) {
	query := bson.M{"organization": organization}
	if resourceType != "" {
		query["type"] = resourceType
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}}).SetLimit(limit).SetSkip(offset)
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	resources := []Resource{}
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

func (r *ResourceRepositoryImpl) Replace(ctx context.Context, res *Resource) error {
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": res.ID, "organization": res.Organization}, res)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ResourceRepositoryImpl) Delete(ctx context.Context, organization string, id primitive.ObjectID) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id, "organization": organization})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ResourceRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "organization", Value: 1}, {Key: "type", Value: 1}},
		Options: options.Index().SetName("idx_org_type"),
	})
	return err
}
