package mongodb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// newTestStore connects to the server named by TODOLIST_TEST_MONGO_URI,
// using a throwaway database that is dropped on cleanup.
func newTestStore(t *testing.T) *MongoStore {
	t.Helper()

	uri := os.Getenv("TODOLIST_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TODOLIST_TEST_MONGO_URI not set")
	}

	dbName := fmt.Sprintf("todolist_test_%d", time.Now().UnixNano())
	store, err := New(context.Background(), Config{URI: uri, Database: dbName})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.client.Database(dbName).Drop(context.Background())
		store.Close()
	})
	return store
}

func TestObjectID(t *testing.T) {
	tests := []struct {
		id     string
		wantOK bool
	}{
		{"65a1b2c3d4e5f60718293a4b", true},
		{"", false},
		{"nonexistent-id", false},
		{"65a1b2c3d4e5f60718293a4", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, ok := objectID(tt.id)
			if ok != tt.wantOK {
				t.Errorf("objectID(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
		})
	}
}

func TestMongoStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("users by email", func(t *testing.T) {
		user := &models.User{LastName: "Durand", FirstName: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected user ID to be assigned")
		}

		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID || got.PasswordHash != "hash" {
			t.Errorf("Unexpected user: %+v", got)
		}

		missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil || missing != nil {
			t.Errorf("Expected nil, nil for unknown email; got %+v, %v", missing, err)
		}
	})

	t.Run("group cascade delete", func(t *testing.T) {
		group := &models.TodoGroup{Name: "Courses", Owner: "owner-1"}
		if err := store.CreateTodoGroup(ctx, group); err != nil {
			t.Fatalf("CreateTodoGroup failed: %v", err)
		}
		todo := &models.Todo{Text: "pain", Group: group.ID, Owner: "owner-1"}
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}

		result, err := store.DeleteTodoGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("DeleteTodoGroup failed: %v", err)
		}
		if !result.GroupDeleted || result.TodosDeleted != 1 {
			t.Errorf("Unexpected cascade result: %+v", result)
		}

		if _, err := store.GetTodoGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("invalid ids are not found", func(t *testing.T) {
		if _, err := store.GetTodo(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetTodo: expected ErrNotFound, got %v", err)
		}
		deleted, err := store.DeleteTodo(ctx, "nonexistent-id")
		if err != nil || deleted {
			t.Errorf("DeleteTodo: expected false, nil; got %v, %v", deleted, err)
		}
	})

	t.Run("update todo", func(t *testing.T) {
		todo := &models.Todo{Text: "before", Group: "g", Owner: "o"}
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}
		todo.Done = true
		if err := store.UpdateTodo(ctx, todo); err != nil {
			t.Fatalf("UpdateTodo failed: %v", err)
		}
		got, err := store.GetTodo(ctx, todo.ID)
		if err != nil {
			t.Fatalf("GetTodo failed: %v", err)
		}
		if !got.Done || got.Text != "before" {
			t.Errorf("Unexpected todo: %+v", got)
		}
	})
}
