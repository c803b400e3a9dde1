package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset mirrors EmailVerification for the forgot-password flow.
// A user holds at most one row, the latest request overwrites the previous
// unused one.
type PasswordReset struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	OTP       string    `db:"otp"`
	IsUsed    bool      `db:"is_used"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *PasswordReset) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}
