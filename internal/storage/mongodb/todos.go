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
	"github.com/mmynk/todolist/internal/storage"
)

type todoDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Text  string             `bson:"text"`
	Group string             `bson:"group"`
	Owner string             `bson:"owner"`
	Done  bool               `bson:"done"`
	Date  time.Time          `bson:"date"`
}

func (d *todoDoc) model() *models.Todo {
	return &models.Todo{
		ID:    d.ID.Hex(),
		Text:  d.Text,
		Group: d.Group,
		Owner: d.Owner,
		Done:  d.Done,
		Date:  d.Date.UTC(),
	}
}

// CreateTodo inserts a new todo document.
func (s *MongoStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	if todo.Date.IsZero() {
		todo.Date = time.Now().UTC()
	}
	doc := todoDoc{
		ID:    primitive.NewObjectID(),
		Text:  todo.Text,
		Group: todo.Group,
		Owner: todo.Owner,
		Done:  todo.Done,
		Date:  todo.Date,
	}

	if _, err := s.todos.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	todo.ID = doc.ID.Hex()
	return nil
}

// GetTodo retrieves a todo by ID.
func (s *MongoStore) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, fmt.Errorf("todo %s: %w", id, storage.ErrNotFound)
	}

	var doc todoDoc
	err := s.todos.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("todo %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return doc.model(), nil
}

// ListTodosByGroup retrieves all todos of a group in natural order.
func (s *MongoStore) ListTodosByGroup(ctx context.Context, group string) ([]*models.Todo, error) {
	cursor, err := s.todos.Find(ctx, bson.M{"group": group})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos by group: %w", err)
	}

	var docs []todoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode todos: %w", err)
	}

	todos := make([]*models.Todo, len(docs))
	for i := range docs {
		todos[i] = docs[i].model()
	}
	return todos, nil
}

// UpdateTodo overwrites the mutable fields of an existing todo.
func (s *MongoStore) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	oid, ok := objectID(todo.ID)
	if !ok {
		return fmt.Errorf("todo %s: %w", todo.ID, storage.ErrNotFound)
	}

	res, err := s.todos.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"text": todo.Text, "done": todo.Done, "date": todo.Date}},
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("todo %s: %w", todo.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteTodo removes a todo by ID and reports whether it existed.
func (s *MongoStore) DeleteTodo(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	res, err := s.todos.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete todo: %w", err)
	}

	return res.DeletedCount > 0, nil
}
