package models

import "time"

// TodoGroup is a named list of todos owned by one user.
// Deleting a group deletes every Todo whose Group equals its ID.
type TodoGroup struct {
	ID string `json:"id"`

	// Name is the display name of the list ("nom" on the wire).
	Name string `json:"nom"`

	// Owner is the User ID the group belongs to.
	Owner string `json:"owner"`

	// Date is the creation time, bumped on every update.
	Date time.Time `json:"date"`
}

// Rename sets a new name and bumps Date.
func (g *TodoGroup) Rename(name string, now time.Time) {
	g.Name = name
	g.Date = now
}
