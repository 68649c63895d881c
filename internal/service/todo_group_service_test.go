package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/todolist/internal/storage"
)

func TestCreateTodoGroup(t *testing.T) {
	svc := NewTodoGroupService(newTestStore(t))

	group, err := svc.Create(context.Background(), "owner-1", "Courses")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Courses" || group.Owner != "owner-1" {
		t.Errorf("unexpected group: %+v", group)
	}
	if group.Date.IsZero() {
		t.Error("expected non-zero date")
	}
}

func TestListTodoGroups_ConcurrentCreates(t *testing.T) {
	svc := NewTodoGroupService(newTestStore(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, name := range []string{"Maison", "Travail"} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, "owner-1", name)
		}(i, name)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	groups, err := svc.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	names := map[string]bool{}
	for _, g := range groups {
		names[g.Name] = true
	}
	if !names["Maison"] || !names["Travail"] {
		t.Errorf("expected both groups listed, got %v", names)
	}
}

func TestUpdateTodoGroup(t *testing.T) {
	svc := NewTodoGroupService(newTestStore(t))
	svc.now = steppedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	group, err := svc.Create(ctx, "owner-1", "Old")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "New"
	updated, err := svc.Update(ctx, group.ID, &name)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "New" {
		t.Errorf("name: expected 'New', got '%s'", updated.Name)
	}
	if !updated.Date.After(group.Date) {
		t.Errorf("expected date to be bumped: %v -> %v", group.Date, updated.Date)
	}

	unchanged, err := svc.Update(ctx, group.ID, nil)
	if err != nil {
		t.Fatalf("Update with no fields failed: %v", err)
	}
	if unchanged.Name != "New" {
		t.Errorf("name: expected 'New', got '%s'", unchanged.Name)
	}

	if _, err := svc.Update(ctx, "nonexistent-id", &name); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTodoGroup_Cascade(t *testing.T) {
	store := newTestStore(t)
	groups := NewTodoGroupService(store)
	todos := NewTodoService(store)
	ctx := context.Background()

	group, err := groups.Create(ctx, "owner-1", "Courses")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, text := range []string{"pain", "lait", "oeufs"} {
		if _, err := todos.Create(ctx, "owner-1", group.ID, text); err != nil {
			t.Fatalf("Create todo failed: %v", err)
		}
	}

	result, err := groups.Delete(ctx, group.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !result.GroupDeleted || result.TodosDeleted != 3 {
		t.Errorf("unexpected cascade result: %+v", result)
	}

	remaining, err := todos.ListByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no todos after cascade, got %d", len(remaining))
	}

	listed, err := groups.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected group to be gone, got %d groups", len(listed))
	}
}
