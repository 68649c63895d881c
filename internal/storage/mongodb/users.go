package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mmynk/todolist/internal/models"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Nom       string             `bson:"nom"`
	Prenom    string             `bson:"prenom"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDoc) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		LastName:     d.Nom,
		FirstName:    d.Prenom,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

// CreateUser inserts a new user document.
func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Nom:       user.LastName,
		Prenom:    user.FirstName,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: user.CreatedAt,
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = doc.ID.Hex()
	return nil
}

// GetUserByEmail returns the first user document with the email.
func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return doc.model(), nil
}

// ListUsersByEmail returns every user document with the email.
func (s *MongoStore) ListUsersByEmail(ctx context.Context, email string) ([]*models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list users by email: %w", err)
	}

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]*models.User, len(docs))
	for i := range docs {
		users[i] = docs[i].model()
	}
	return users, nil
}
