package domain

import "github.com/google/uuid"

// Tag and Requirement are free-form names attached to tasks, de-duplicated by
// name and created on demand.
type Tag struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type Requirement struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
