package project

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

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, organization string, id primitive.ObjectID) (*Project, error)
	List(ctx context.Context, organization string, filter map[string]string, limit, offset int64) ([]Project, int64, error)
	Replace(ctx context.Context, p *Project) error
	Delete(ctx context.Context, organization string, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type ProjectRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewProjectRepository(mongodb *database.MongodbDB) ProjectRepository {
	return &ProjectRepositoryImpl{
		Collection: mongodb.DB.Collection("projects"),
	}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, p *Project) error {
	if _, err := r.Collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepositoryImpl) FindByID(ctx context.Context, organization string, id primitive.ObjectID) (*Project, error) {
	var p Project
	err := r.Collection.FindOne(ctx, bson.M{"_id": id, "organization": organization}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepositoryImpl) List(ctx context.Context, organization string, filter map[string]string, limit, offset int64) ([]Project, int64, error) {
	query := bson.M{"organization": organization}
	for k, v := range filter {
		if v != "" {
			query[k] = v
		}
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit).SetSkip(offset)
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	projects := []Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepositoryImpl) Replace(ctx context.Context, p *Project) error {
	res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": p.ID, "organization": p.Organization}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, organization string, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id, "organization": organization})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "organization", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_org_created"),
	})
	return err
}
