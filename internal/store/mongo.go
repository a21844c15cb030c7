package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hackhub/hackhub/internal/models"
)

// MongoStore persists users and projects in two MongoDB collections.
type MongoStore struct {
	users    *mongo.Collection
	projects *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:    db.Collection("users"),
		projects: db.Collection("projects"),
	}
}

func (s *MongoStore) InsertUser(ctx context.Context, user models.User) error {
	// Check if the email is already taken
	err := s.users.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	_, err = s.users.InsertOne(ctx, user)
	return err
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoStore) InsertProject(ctx context.Context, project models.Project) error {
	_, err := s.projects.InsertOne(ctx, project)
	return err
}

func (s *MongoStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	cursor, err := s.projects.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *MongoStore) GetProject(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Project{}, ErrProjectNotFound
	}
	return project, err
}

func (s *MongoStore) ReplaceProject(ctx context.Context, project models.Project) error {
	next := project
	next.Version = project.Version + 1

	result, err := s.projects.ReplaceOne(ctx,
		bson.M{"_id": project.ID, "version": project.Version}, next)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a lost race from a missing project.
		err := s.projects.FindOne(ctx, bson.M{"_id": project.ID}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProjectNotFound
		}
		if err != nil {
			return err
		}
		return ErrVersionConflict
	}
	return nil
}

func (s *MongoStore) CountProjects(ctx context.Context) (int64, error) {
	return s.projects.CountDocuments(ctx, bson.M{})
}
