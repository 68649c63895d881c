package models

import "time"

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user. Its format depends on the
	// storage backend (UUID for SQLite, ObjectID hex for MongoDB).
	ID string `json:"id"`

	// LastName is the user's family name ("nom" on the wire).
	LastName string `json:"nom"`

	// FirstName is the user's given name ("prenom" on the wire).
	FirstName string `json:"prenom"`

	// Email is the login identity. Uniqueness is not enforced.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser creates a new User with the given fields.
// ID is left empty for the store to assign.
func NewUser(lastName, firstName, email, passwordHash string) *User {
	return &User{
		LastName:     lastName,
		FirstName:    firstName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
