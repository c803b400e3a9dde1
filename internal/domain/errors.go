package domain

import "errors"

// Storage sentinels. Repositories translate driver errors into these,
// services translate them into their own error set.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNoRowsAffected = errors.New("no rows affected")
)
