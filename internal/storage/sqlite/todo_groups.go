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

// CreateTodoGroup persists a new todo group to the database.
func (s *SQLiteStore) CreateTodoGroup(ctx context.Context, group *models.TodoGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.Date.IsZero() {
		group.Date = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO todo_groups (id, nom, owner, date) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.Owner, toMillis(group.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo group: %w", err)
	}

	return nil
}

// GetTodoGroup retrieves a todo group by ID.
func (s *SQLiteStore) GetTodoGroup(ctx context.Context, id string) (*models.TodoGroup, error) {
	group := &models.TodoGroup{}
	var date int64

	err := s.db.QueryRowContext(ctx,
		"SELECT id, nom, owner, date FROM todo_groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.Name, &group.Owner, &date)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("todo group %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo group: %w", err)
	}

	group.Date = fromMillis(date)
	return group, nil
}

// ListTodoGroupsByOwner retrieves all todo groups of an owner in insertion order.
func (s *SQLiteStore) ListTodoGroupsByOwner(ctx context.Context, owner string) ([]*models.TodoGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, nom, owner, date FROM todo_groups WHERE owner = ? ORDER BY rowid",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todo groups by owner: %w", err)
	}
	defer rows.Close()

	groups := []*models.TodoGroup{}
	for rows.Next() {
		group := &models.TodoGroup{}
		var date int64
		if err := rows.Scan(&group.ID, &group.Name, &group.Owner, &date); err != nil {
			return nil, fmt.Errorf("failed to scan todo group: %w", err)
		}
		group.Date = fromMillis(date)
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todo groups: %w", err)
	}

	return groups, nil
}

// UpdateTodoGroup overwrites the name and date of an existing group.
func (s *SQLiteStore) UpdateTodoGroup(ctx context.Context, group *models.TodoGroup) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE todo_groups SET nom = ?, date = ? WHERE id = ?",
		group.Name, toMillis(group.Date), group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo group: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated todo group: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo group %s: %w", group.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteTodoGroup removes a group and its todos in one transaction.
func (s *SQLiteStore) DeleteTodoGroup(ctx context.Context, id string) (storage.CascadeResult, error) {
	var result storage.CascadeResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM todo_groups WHERE id = ?", id)
	if err != nil {
		return result, fmt.Errorf("failed to delete todo group: %w", err)
	}
	groups, err := res.RowsAffected()
	if err != nil {
		return result, fmt.Errorf("failed to check deleted todo group: %w", err)
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM todos WHERE group_id = ?", id)
	if err != nil {
		return result, fmt.Errorf("failed to delete todos of group: %w", err)
	}
	todos, err := res.RowsAffected()
	if err != nil {
		return result, fmt.Errorf("failed to check deleted todos: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.GroupDeleted = groups > 0
	result.TodosDeleted = todos
	return result, nil
}
