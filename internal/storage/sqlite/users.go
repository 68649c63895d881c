package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/todolist/internal/models"
)

const userColumns = "id, nom, prenom, email, password_hash, created_at"

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.LastName,
		user.FirstName,
		user.Email,
		user.PasswordHash,
		toMillis(user.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves the first user registered with the email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY rowid LIMIT 1`,
		email,
	)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ListUsersByEmail retrieves every user registered with the email address.
func (s *SQLiteStore) ListUsersByEmail(ctx context.Context, email string) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY rowid`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by email: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var createdAt int64
	if err := row.Scan(
		&user.ID,
		&user.LastName,
		&user.FirstName,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
	); err != nil {
		return nil, err
	}
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}
