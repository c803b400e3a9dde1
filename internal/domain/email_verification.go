package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerification holds a one-time code sent to a user to confirm their
// email address. A code is consumed at most once and becomes unusable after
// ExpiresAt.
type EmailVerification struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	OTP       string    `db:"otp"`
	IsUsed    bool      `db:"is_used"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (v *EmailVerification) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}
