// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/todolist/internal/models"
)

// ErrNotFound is returned (wrapped) when a single entity lookup matches nothing.
var ErrNotFound = errors.New("not found")

// CascadeResult reports what a todo group deletion removed.
type CascadeResult struct {
	// GroupDeleted is false when no group matched the ID.
	GroupDeleted bool
	// TodosDeleted is the number of todos removed along with the group.
	TodosDeleted int64
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser persists a new user. The user.ID field is populated by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns the first user stored with the given email.
	// Returns nil and no error if no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsersByEmail returns every user stored with the given email.
	ListUsersByEmail(ctx context.Context, email string) ([]*models.User, error)
}

// TodoGroupStore persists todo groups.
type TodoGroupStore interface {
	CreateTodoGroup(ctx context.Context, group *models.TodoGroup) error
	GetTodoGroup(ctx context.Context, id string) (*models.TodoGroup, error)
	ListTodoGroupsByOwner(ctx context.Context, owner string) ([]*models.TodoGroup, error)
	UpdateTodoGroup(ctx context.Context, group *models.TodoGroup) error

	// DeleteTodoGroup removes the group and every todo whose group is id.
	// Deleting a missing group is not an error.
	DeleteTodoGroup(ctx context.Context, id string) (CascadeResult, error)
}

// TodoStore persists todos.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *models.Todo) error
	GetTodo(ctx context.Context, id string) (*models.Todo, error)
	ListTodosByGroup(ctx context.Context, group string) ([]*models.Todo, error)
	UpdateTodo(ctx context.Context, todo *models.Todo) error

	// DeleteTodo removes one todo and reports whether it existed.
	DeleteTodo(ctx context.Context, id string) (bool, error)
}

// Store defines the full set of storage operations.
// This abstraction allows swapping storage backends (SQLite, MongoDB)
// without changing the service layer.
type Store interface {
	UserStore
	TodoGroupStore
	TodoStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
