package domain

import "github.com/google/uuid"

// Specialty is a profile skill label shared across users. Rows referenced by
// no user are pruned.
type Specialty struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
