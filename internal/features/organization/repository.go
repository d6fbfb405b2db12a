package organization

import (
	"context"
	"errors"
	"fmt"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	FindBySlug(ctx context.Context, slug string) (*models.Organization, error)
	List(ctx context.Context) ([]models.Organization, error)
	EnsureIndexes(ctx context.Context) error
}

type OrganizationRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewOrganizationRepository(mongodb *database.MongodbDB) OrganizationRepository {
	return &OrganizationRepositoryImpl{
		Collection: mongodb.DB.Collection("organizations"),
	}
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *models.Organization) error {
	if _, err := r.Collection.InsertOne(ctx, org); err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	var org models.Organization
	err := r.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&org)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepositoryImpl) List(ctx context.Context) ([]models.Organization, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"slug": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orgs := []models.Organization{}
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *OrganizationRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("idx_slug_unique").SetUnique(true),
	})
	return err
}
