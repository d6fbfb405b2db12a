package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	ListByOrganization(ctx context.Context, organization string) ([]models.User, error)
	List(ctx context.Context, organization string, filter map[string]string, limit, offset int64) ([]models.User, int64, error)
	Replace(ctx context.Context, user *models.User) error
	SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetAdmin(ctx context.Context, organization string, id primitive.ObjectID, isAdmin bool) error
	Delete(ctx context.Context, organization string, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type UserRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewUserRepository(mongodb *database.MongodbDB) UserRepository {
	return &UserRepositoryImpl{
		Collection: mongodb.DB.Collection("users"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	if _, err := r.Collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.Collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (r *UserRepositoryImpl) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []models.User{}, nil
	}

	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListByOrganization loads every member of an organization in insertion
// order, without password hashes.
func (r *UserRepositoryImpl) ListByOrganization(ctx context.Context, organization string) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.M{"_id": 1})
	cursor, err := r.Collection.Find(ctx, bson.M{"organization": organization}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, organization string, filter map[string]string, limit, offset int64) ([]models.User, int64, error) {
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

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Replace writes the whole document. The stored password hash is kept even
// when user carries none.
func (r *UserRepositoryImpl) Replace(ctx context.Context, user *models.User) error {
	if user.Password == "" {
		existing, err := r.findOne(ctx, bson.M{"_id": user.ID})
		if err != nil {
			return err
		}
		user.Password = existing.Password
	}
	user.Email = normalizeEmail(user.Email)

	res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": user.ID, "organization": user.Organization}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailTaken
		}
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) updateFields(ctx context.Context, filter bson.M, set bson.M) error {
	res, err := r.Collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.updateFields(ctx, bson.M{"_id": id}, bson.M{"lastLogin": at})
}

func (r *UserRepositoryImpl) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.updateFields(ctx, bson.M{"_id": id}, bson.M{"password": hash, "updatedAt": time.Now()})
}

func (r *UserRepositoryImpl) SetAdmin(ctx context.Context, organization string, id primitive.ObjectID, isAdmin bool) error {
	return r.updateFields(ctx,
		bson.M{"_id": id, "organization": organization},
		bson.M{"isAdmin": isAdmin, "updatedAt": time.Now()})
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, organization string, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id, "organization": organization})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "organization", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_org_role"),
		},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
