package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rishanreddy/habitmind/internal/models"
)

const (
	HabitsCollection = "habits"
	UsersCollection  = "users"
)

// MongoHabitRepository is a MongoDB implementation of HabitRepository
type MongoHabitRepository struct {
	coll *mongo.Collection
}

// NewMongoHabitRepository creates a HabitRepository backed by the habits collection
func NewMongoHabitRepository(db *mongo.Database) HabitRepository {
	return &MongoHabitRepository{coll: db.Collection(HabitsCollection)}
}

func (r *MongoHabitRepository) FindByOwner(ctx context.Context, filter HabitFilter) ([]models.Habit, int64, error) {
	query := bson.M{"ownerId": filter.OwnerID}
	if filter.ActiveOnly {
		query["isActive"] = true
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}, {Key: "createdAt", Value: 1}})
	if filter.Paged() {
		opts.SetSkip(int64(filter.Offset())).SetLimit(int64(filter.PageSize))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	habits := []models.Habit{}
	if err := cursor.All(ctx, &habits); err != nil {
		return nil, 0, err
	}

	return habits, total, nil
}

func (r *MongoHabitRepository) FindByID(ctx context.Context, id string) (*models.Habit, error) {
	var habit models.Habit
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&habit); err != nil {
		return nil, translateMongoError(err)
	}
	return &habit, nil
}

func (r *MongoHabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	now := time.Now().UTC()
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = now
	}
	habit.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, habit)
	return translateMongoError(err)
}

func (r *MongoHabitRepository) Update(ctx context.Context, habit *models.Habit) error {
	habit.UpdatedAt = time.Now().UTC()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": habit.ID}, habit)
	if err != nil {
		return translateMongoError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoHabitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoUserRepository is a MongoDB implementation of UserRepository
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a UserRepository backed by the users collection
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, user)
	return translateMongoError(err)
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return translateMongoError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureMongoIndexes creates the indexes the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(HabitsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "priority", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
