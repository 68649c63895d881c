package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

const todoColumns = "id, text, group_id, owner, done, date"

// CreateTodo persists a new todo to the database.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if todo.Date.IsZero() {
		todo.Date = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (`+todoColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Text, todo.Group, todo.Owner, todo.Done, toMillis(todo.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	return nil
}

// GetTodo retrieves a todo by ID.
func (s *SQLiteStore) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`,
		id,
	)

	todo, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("todo %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// ListTodosByGroup retrieves all todos of a group in insertion order.
func (s *SQLiteStore) ListTodosByGroup(ctx context.Context, group string) ([]*models.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE group_id = ? ORDER BY rowid`,
		group,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos by group: %w", err)
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// UpdateTodo overwrites the mutable fields of an existing todo.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE todos SET text = ?, done = ?, date = ? WHERE id = ?",
		todo.Text, todo.Done, toMillis(todo.Date), todo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated todo: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", todo.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteTodo removes a todo by ID.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete todo: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted todo: %w", err)
	}

	return n > 0, nil
}

func scanTodo(row scanner) (*models.Todo, error) {
	todo := &models.Todo{}
	var date int64
	if err := row.Scan(&todo.ID, &todo.Text, &todo.Group, &todo.Owner, &todo.Done, &date); err != nil {
		return nil, err
	}
	todo.Date = fromMillis(date)
	return todo, nil
}
