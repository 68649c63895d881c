// Package models defines the core domain models for the todolist API.
//
// # Models
//
//   - User: a registered account, identified for login by email
//   - TodoGroup: a named list of todos belonging to one owner
//   - Todo: a single task inside a group
//
// # Relationships
//
// Relationships are plain ID strings, never pointers. A Todo carries both its
// Group and its Owner; a TodoGroup carries its Owner. None of these references
// are checked at write time: a Todo may point at a group that no longer
// exists, and two users may share an email address.
//
// # Wire names
//
// JSON tags keep the field names the API has always used (nom, prenom, date).
// The password hash is never serialized.
package models
