package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// TodoService manages todos.
type TodoService struct {
	store storage.TodoStore
	now   func() time.Time
}

// NewTodoService creates a new TodoService with the given storage backend.
func NewTodoService(store storage.TodoStore) *TodoService {
	return &TodoService{store: store, now: utcNow}
}

// Create persists a new, not-done todo in group for owner.
// Neither the owner nor the group is checked for existence.
func (s *TodoService) Create(ctx context.Context, owner, group, text string) (*models.Todo, error) {
	slog.Info("CreateTodo request received", "owner", owner, "group_id", group)

	todo := &models.Todo{
		Text:  text,
		Group: group,
		Owner: owner,
		Done:  false,
		Date:  s.now(),
	}
	if err := s.store.CreateTodo(ctx, todo); err != nil {
		slog.Error("CreateTodo failed", "group_id", group, "error", err)
		return nil, fmt.Errorf("create todo: %w", err)
	}

	slog.Info("Todo created", "todo_id", todo.ID, "group_id", group)
	return todo, nil
}

// ListByGroup returns the group's todos in store order.
func (s *TodoService) ListByGroup(ctx context.Context, group string) ([]*models.Todo, error) {
	todos, err := s.store.ListTodosByGroup(ctx, group)
	if err != nil {
		slog.Error("ListTodos failed", "group_id", group, "error", err)
		return nil, fmt.Errorf("list todos: %w", err)
	}

	slog.Debug("ListTodos successful", "group_id", group, "count", len(todos))
	return todos, nil
}

// Update applies a partial update. Fields absent from the patch keep their
// stored value; an empty patch returns the todo unchanged.
func (s *TodoService) Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error) {
	todo, err := s.store.GetTodo(ctx, id)
	if err != nil {
		slog.Warn("UpdateTodo failed - could not load todo", "todo_id", id, "error", err)
		return nil, fmt.Errorf("update todo: %w", err)
	}

	if !todo.Apply(patch, s.now()) {
		return todo, nil
	}

	if err := s.store.UpdateTodo(ctx, todo); err != nil {
		slog.Error("UpdateTodo failed", "todo_id", id, "error", err)
		return nil, fmt.Errorf("update todo: %w", err)
	}

	slog.Info("Todo updated", "todo_id", id, "done", todo.Done)
	return todo, nil
}

// Delete removes a todo and reports whether it existed.
func (s *TodoService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.DeleteTodo(ctx, id)
	if err != nil {
		slog.Error("DeleteTodo failed", "todo_id", id, "error", err)
		return false, fmt.Errorf("delete todo: %w", err)
	}

	slog.Info("Todo deleted", "todo_id", id, "deleted", deleted)
	return deleted, nil
}
