package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// TodoGroupService manages todo groups.
type TodoGroupService struct {
	store storage.TodoGroupStore
	now   func() time.Time
}

// NewTodoGroupService creates a new TodoGroupService with the given storage backend.
func NewTodoGroupService(store storage.TodoGroupStore) *TodoGroupService {
	return &TodoGroupService{store: store, now: utcNow}
}

// Create persists a new group for owner. The owner is not checked.
func (s *TodoGroupService) Create(ctx context.Context, owner, name string) (*models.TodoGroup, error) {
	slog.Info("CreateTodoGroup request received", "owner", owner, "name", name)

	group := &models.TodoGroup{
		Name:  name,
		Owner: owner,
		Date:  s.now(),
	}
	if err := s.store.CreateTodoGroup(ctx, group); err != nil {
		slog.Error("CreateTodoGroup failed", "owner", owner, "error", err)
		return nil, fmt.Errorf("create todo group: %w", err)
	}

	slog.Info("Todo group created", "group_id", group.ID, "owner", owner)
	return group, nil
}

// ListByOwner returns the owner's groups in store order.
func (s *TodoGroupService) ListByOwner(ctx context.Context, owner string) ([]*models.TodoGroup, error) {
	groups, err := s.store.ListTodoGroupsByOwner(ctx, owner)
	if err != nil {
		slog.Error("ListTodoGroups failed", "owner", owner, "error", err)
		return nil, fmt.Errorf("list todo groups: %w", err)
	}

	slog.Debug("ListTodoGroups successful", "owner", owner, "count", len(groups))
	return groups, nil
}

// Update renames a group when name is non-nil. A nil name returns the
// stored group unchanged.
func (s *TodoGroupService) Update(ctx context.Context, id string, name *string) (*models.TodoGroup, error) {
	group, err := s.store.GetTodoGroup(ctx, id)
	if err != nil {
		slog.Warn("UpdateTodoGroup failed - could not load group", "group_id", id, "error", err)
		return nil, fmt.Errorf("update todo group: %w", err)
	}
	if name == nil {
		return group, nil
	}

	group.Rename(*name, s.now())
	if err := s.store.UpdateTodoGroup(ctx, group); err != nil {
		slog.Error("UpdateTodoGroup failed", "group_id", id, "error", err)
		return nil, fmt.Errorf("update todo group: %w", err)
	}

	slog.Info("Todo group updated", "group_id", id)
	return group, nil
}

// Delete removes a group together with its todos.
func (s *TodoGroupService) Delete(ctx context.Context, id string) (storage.CascadeResult, error) {
	result, err := s.store.DeleteTodoGroup(ctx, id)
	if err != nil {
		slog.Error("DeleteTodoGroup failed", "group_id", id, "error", err)
		return result, fmt.Errorf("delete todo group: %w", err)
	}

	slog.Info("Todo group deleted",
		"group_id", id,
		"group_deleted", result.GroupDeleted,
		"todos_deleted", result.TodosDeleted,
	)
	return result, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
