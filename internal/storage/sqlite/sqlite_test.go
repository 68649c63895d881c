package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamp", func(t *testing.T) {
		user := &models.User{LastName: "Durand", FirstName: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetUserByEmail returns nil for unknown email", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user != nil {
			t.Errorf("Expected nil user, got %+v", user)
		}
	})

	t.Run("duplicate emails are kept and listed in order", func(t *testing.T) {
		first := &models.User{LastName: "Martin", FirstName: "Bob", Email: "bob@example.com", PasswordHash: "h1"}
		second := &models.User{LastName: "Martin", FirstName: "Robert", Email: "bob@example.com", PasswordHash: "h2"}
		if err := store.CreateUser(ctx, first); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if err := store.CreateUser(ctx, second); err != nil {
			t.Fatalf("CreateUser with duplicate email failed: %v", err)
		}

		users, err := store.ListUsersByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("ListUsersByEmail failed: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("Expected 2 users, got %d", len(users))
		}

		got, err := store.GetUserByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != first.ID {
			t.Errorf("Expected first stored user %s, got %s", first.ID, got.ID)
		}
		if got.PasswordHash != "h1" {
			t.Errorf("PasswordHash mismatch: got %s", got.PasswordHash)
		}
	})

	t.Run("ListUsersByEmail returns empty slice", func(t *testing.T) {
		users, err := store.ListUsersByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("ListUsersByEmail failed: %v", err)
		}
		if users == nil || len(users) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", users)
		}
	})
}

func TestTodoGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create, get and list by owner", func(t *testing.T) {
		group := &models.TodoGroup{Name: "Courses", Owner: "owner-1"}
		if err := store.CreateTodoGroup(ctx, group); err != nil {
			t.Fatalf("CreateTodoGroup failed: %v", err)
		}
		other := &models.TodoGroup{Name: "Travail", Owner: "owner-2"}
		if err := store.CreateTodoGroup(ctx, other); err != nil {
			t.Fatalf("CreateTodoGroup failed: %v", err)
		}

		got, err := store.GetTodoGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetTodoGroup failed: %v", err)
		}
		if got.Name != "Courses" || got.Owner != "owner-1" {
			t.Errorf("Unexpected group: %+v", got)
		}

		groups, err := store.ListTodoGroupsByOwner(ctx, "owner-1")
		if err != nil {
			t.Fatalf("ListTodoGroupsByOwner failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != group.ID {
			t.Errorf("Expected only group %s, got %v", group.ID, groups)
		}
	})

	t.Run("GetTodoGroup returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetTodoGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateTodoGroup persists name and date", func(t *testing.T) {
		group := &models.TodoGroup{Name: "Old", Owner: "owner-3"}
		if err := store.CreateTodoGroup(ctx, group); err != nil {
			t.Fatalf("CreateTodoGroup failed: %v", err)
		}

		later := group.Date.Add(time.Minute)
		group.Rename("New", later)
		if err := store.UpdateTodoGroup(ctx, group); err != nil {
			t.Fatalf("UpdateTodoGroup failed: %v", err)
		}

		got, err := store.GetTodoGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetTodoGroup failed: %v", err)
		}
		if got.Name != "New" {
			t.Errorf("Name mismatch: got %s, want New", got.Name)
		}
		if !got.Date.Equal(later.Truncate(time.Millisecond)) {
			t.Errorf("Date mismatch: got %v, want %v", got.Date, later)
		}
	})

	t.Run("UpdateTodoGroup returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateTodoGroup(ctx, &models.TodoGroup{ID: "nonexistent-id", Name: "x", Date: time.Now()})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteTodoGroup cascades to todos", func(t *testing.T) {
		group := &models.TodoGroup{Name: "Cascade", Owner: "owner-4"}
		if err := store.CreateTodoGroup(ctx, group); err != nil {
			t.Fatalf("CreateTodoGroup failed: %v", err)
		}
		keep := &models.TodoGroup{Name: "Keep", Owner: "owner-4"}
		if err := store.CreateTodoGroup(ctx, keep); err != nil {
			t.Fatalf("CreateTodoGroup failed: %v", err)
		}
		for _, text := range []string{"pain", "lait"} {
			if err := store.CreateTodo(ctx, &models.Todo{Text: text, Group: group.ID, Owner: "owner-4"}); err != nil {
				t.Fatalf("CreateTodo failed: %v", err)
			}
		}
		if err := store.CreateTodo(ctx, &models.Todo{Text: "other", Group: keep.ID, Owner: "owner-4"}); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}

		result, err := store.DeleteTodoGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("DeleteTodoGroup failed: %v", err)
		}
		if !result.GroupDeleted {
			t.Error("Expected GroupDeleted to be true")
		}
		if result.TodosDeleted != 2 {
			t.Errorf("TodosDeleted: got %d, want 2", result.TodosDeleted)
		}

		todos, err := store.ListTodosByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListTodosByGroup failed: %v", err)
		}
		if len(todos) != 0 {
			t.Errorf("Expected no todos left, got %d", len(todos))
		}

		kept, err := store.ListTodosByGroup(ctx, keep.ID)
		if err != nil {
			t.Fatalf("ListTodosByGroup failed: %v", err)
		}
		if len(kept) != 1 {
			t.Errorf("Expected other group's todo to survive, got %d", len(kept))
		}
	})

	t.Run("DeleteTodoGroup on missing group is a no-op", func(t *testing.T) {
		result, err := store.DeleteTodoGroup(ctx, "nonexistent-id")
		if err != nil {
			t.Fatalf("DeleteTodoGroup failed: %v", err)
		}
		if result.GroupDeleted || result.TodosDeleted != 0 {
			t.Errorf("Expected empty result, got %+v", result)
		}
	})

	t.Run("concurrent creates for one owner are all listed", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, name := range []string{"A", "B"} {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				errs <- store.CreateTodoGroup(ctx, &models.TodoGroup{Name: name, Owner: "owner-5"})
			}(name)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("CreateTodoGroup failed: %v", err)
			}
		}

		groups, err := store.ListTodoGroupsByOwner(ctx, "owner-5")
		if err != nil {
			t.Fatalf("ListTodoGroupsByOwner failed: %v", err)
		}
		if len(groups) != 2 {
			t.Errorf("Expected 2 groups, got %d", len(groups))
		}
	})
}

func TestTodos(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and list by group", func(t *testing.T) {
		todo := &models.Todo{Text: "acheter du pain", Group: "group-1", Owner: "owner-1"}
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}

		todos, err := store.ListTodosByGroup(ctx, "group-1")
		if err != nil {
			t.Fatalf("ListTodosByGroup failed: %v", err)
		}
		if len(todos) != 1 {
			t.Fatalf("Expected 1 todo, got %d", len(todos))
		}
		if todos[0].ID != todo.ID || todos[0].Done {
			t.Errorf("Unexpected todo: %+v", todos[0])
		}
	})

	t.Run("UpdateTodo persists text and done", func(t *testing.T) {
		todo := &models.Todo{Text: "before", Group: "group-2", Owner: "owner-1"}
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}

		todo.Text = "after"
		todo.Done = true
		if err := store.UpdateTodo(ctx, todo); err != nil {
			t.Fatalf("UpdateTodo failed: %v", err)
		}

		got, err := store.GetTodo(ctx, todo.ID)
		if err != nil {
			t.Fatalf("GetTodo failed: %v", err)
		}
		if got.Text != "after" || !got.Done {
			t.Errorf("Unexpected todo after update: %+v", got)
		}
	})

	t.Run("GetTodo and UpdateTodo return ErrNotFound", func(t *testing.T) {
		if _, err := store.GetTodo(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetTodo: expected ErrNotFound, got %v", err)
		}
		err := store.UpdateTodo(ctx, &models.Todo{ID: "nonexistent-id", Date: time.Now()})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateTodo: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteTodo reports whether a row existed", func(t *testing.T) {
		todo := &models.Todo{Text: "delete me", Group: "group-3", Owner: "owner-1"}
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}

		deleted, err := store.DeleteTodo(ctx, todo.ID)
		if err != nil {
			t.Fatalf("DeleteTodo failed: %v", err)
		}
		if !deleted {
			t.Error("Expected deleted to be true")
		}

		deleted, err = store.DeleteTodo(ctx, todo.ID)
		if err != nil {
			t.Fatalf("second DeleteTodo failed: %v", err)
		}
		if deleted {
			t.Error("Expected second delete to report false")
		}
	})
}

func TestNewInMemory(t *testing.T) {
	store, err := New(memoryPath)
	if err != nil {
		t.Fatalf("Failed to create in-memory store: %v", err)
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
