package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, organization string, id primitive.ObjectID) (*Task, error)
	List(ctx context.Context, organization string, filter Filter, limit, offset int64) ([]Task, int64, error)
	Replace(ctx context.Context, t *Task) error
	UpdateStatus(ctx context.Context, organization string, id primitive.ObjectID, status string, at time.Time) error
	Delete(ctx context.Context, organization string, id primitive.ObjectID) error
	DeleteByProject(ctx context.Context, organization string, projectID primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type TaskRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTaskRepository(mongodb *database.MongodbDB) TaskRepository {
	return &TaskRepositoryImpl{
		Collection: mongodb.DB.Collection("tasks"),
	}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, t *Task) error {
	if _, err := r.Collection.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepositoryImpl) FindByID(ctx context.Context, organization string, id primitive.ObjectID) (*Task, error) {
	var t Task
	err := r.Collection.FindOne(ctx, bson.M{"_id": id, "organization": organization}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, organization string, filter Filter, limit, offset int64) ([]Task, int64, error) {
	query := bson.M{"organization": organization}
	if filter.Project != nil {
		query["project"] = *filter.Project
	}
	if filter.Assignee != nil {
		query["assignee"] = *filter.Assignee
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "dueDate", Value: 1}, {Key: "createdAt", Value: -1}}).
		SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	tasks := []Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepositoryImpl) Replace(ctx context.Context, t *Task) error {
	res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": t.ID, "organization": t.Organization}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) UpdateStatus(ctx context.Context, organization string, id primitive.ObjectID, status string, at time.Time) error {
	res, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id, "organization": organization},
		bson.M{"$set": bson.M{"status": status, "updatedAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, organization string, id primitive.ObjectID) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id, "organization": organization})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) DeleteByProject(ctx context.Context, organization string, projectID primitive.ObjectID) (int64, error) {
	res, err := r.Collection.DeleteMany(ctx, bson.M{"project": projectID, "organization": organization})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *TaskRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization", Value: 1}, {Key: "project", Value: 1}},
			Options: options.Index().SetName("idx_org_project"),
		},
		{
			Keys:    bson.D{{Key: "organization", Value: 1}, {Key: "assignee", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_org_assignee_status"),
		},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}
