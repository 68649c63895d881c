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

type todoGroupDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Nom   string             `bson:"nom"`
	Owner string             `bson:"owner"`
	Date  time.Time          `bson:"date"`
}

func (d *todoGroupDoc) model() *models.TodoGroup {
	return &models.TodoGroup{
		ID:    d.ID.Hex(),
		Name:  d.Nom,
		Owner: d.Owner,
		Date:  d.Date.UTC(),
	}
}

// CreateTodoGroup inserts a new todo group document.
func (s *MongoStore) CreateTodoGroup(ctx context.Context, group *models.TodoGroup) error {
	if group.Date.IsZero() {
		group.Date = time.Now().UTC()
	}
	doc := todoGroupDoc{
		ID:    primitive.NewObjectID(),
		Nom:   group.Name,
		Owner: group.Owner,
		Date:  group.Date,
	}

	if _, err := s.todoGroups.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert todo group: %w", err)
	}

	group.ID = doc.ID.Hex()
	return nil
}

// GetTodoGroup retrieves a todo group by ID.
func (s *MongoStore) GetTodoGroup(ctx context.Context, id string) (*models.TodoGroup, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, fmt.Errorf("todo group %s: %w", id, storage.ErrNotFound)
	}

	var doc todoGroupDoc
	err := s.todoGroups.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("todo group %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo group: %w", err)
	}

	return doc.model(), nil
}

// ListTodoGroupsByOwner retrieves all todo groups of an owner in natural order.
func (s *MongoStore) ListTodoGroupsByOwner(ctx context.Context, owner string) ([]*models.TodoGroup, error) {
	cursor, err := s.todoGroups.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list todo groups by owner: %w", err)
	}

	var docs []todoGroupDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode todo groups: %w", err)
	}

	groups := make([]*models.TodoGroup, len(docs))
	for i := range docs {
		groups[i] = docs[i].model()
	}
	return groups, nil
}

// UpdateTodoGroup overwrites the name and date of an existing group.
func (s *MongoStore) UpdateTodoGroup(ctx context.Context, group *models.TodoGroup) error {
	oid, ok := objectID(group.ID)
	if !ok {
		return fmt.Errorf("todo group %s: %w", group.ID, storage.ErrNotFound)
	}

	res, err := s.todoGroups.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"nom": group.Name, "date": group.Date}},
	)
	if err != nil {
		return fmt.Errorf("failed to update todo group: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("todo group %s: %w", group.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteTodoGroup removes a group and its todos.
//
// With transactions enabled both deletes commit together. Without them the
// group is deleted first; if the todo delete then fails the group stays
// deleted, its todos remain, and the cascade error is returned.
func (s *MongoStore) DeleteTodoGroup(ctx context.Context, id string) (storage.CascadeResult, error) {
	if !s.transactions {
		return s.deleteGroupCascade(ctx, id)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return storage.CascadeResult{}, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	out, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return s.deleteGroupCascade(sc, id)
	})
	if err != nil {
		return storage.CascadeResult{}, err
	}
	return out.(storage.CascadeResult), nil
}

func (s *MongoStore) deleteGroupCascade(ctx context.Context, id string) (storage.CascadeResult, error) {
	var result storage.CascadeResult

	if oid, ok := objectID(id); ok {
		res, err := s.todoGroups.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			return result, fmt.Errorf("failed to delete todo group: %w", err)
		}
		result.GroupDeleted = res.DeletedCount > 0
	}

	res, err := s.todos.DeleteMany(ctx, bson.M{"group": id})
	if err != nil {
		return result, fmt.Errorf("failed to delete todos of group: %w", err)
	}
	result.TodosDeleted = res.DeletedCount

	return result, nil
}
