package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeUser      AccountType = "user"
	AccountTypeTasksmith AccountType = "tasksmith"
	AccountTypeAdmin     AccountType = "admin"
)

type PaymentStatus string

const (
	PaymentStatusFree    PaymentStatus = "free"
	PaymentStatusStarter PaymentStatus = "starter"
	PaymentStatusPro     PaymentStatus = "pro"
)

type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Username     string         `db:"username" json:"username"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	PhoneNumber  sql.NullString `db:"phone_number" json:"phone_number"`
	AccountType  AccountType    `db:"account_type" json:"account_type"`
	IsVerified   bool           `db:"is_verified" json:"is_verified"`
	IsActive     bool           `db:"is_active" json:"is_active"`

	FullName   sql.NullString `db:"full_name" json:"full_name"`
	FirstName  sql.NullString `db:"first_name" json:"first_name"`
	LastName   sql.NullString `db:"last_name" json:"last_name"`
	Bio        sql.NullString `db:"bio" json:"bio"`
	Location   sql.NullString `db:"location" json:"location"`
	Country    sql.NullString `db:"country" json:"country"`
	State      sql.NullString `db:"state" json:"state"`
	PostalCode sql.NullString `db:"postal_code" json:"postal_code"`
	Image      sql.NullString `db:"image" json:"image"`
	Website    sql.NullString `db:"website" json:"website"`
	Company    sql.NullString `db:"company" json:"company"`

	IsPaid        bool          `db:"is_paid" json:"is_paid"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	WalletBalance float64       `db:"wallet_balance" json:"wallet_balance"`

	// Specialties are loaded separately from the m2m table.
	Specialties []Specialty `db:"-" json:"specialties,omitempty"`

	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at" json:"deleted_at,omitempty"`
	DeletedBy sql.NullString `db:"deleted_by" json:"deleted_by,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.AccountType == AccountTypeAdmin
}

func (u *User) IsTasksmith() bool {
	return u.AccountType == AccountTypeTasksmith
}
