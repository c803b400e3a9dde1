package service

import "errors"

var (
	ErrUserAlreadyExists   = errors.New("user with this email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyVerified = errors.New("email address already verified")
	ErrUserNotVerified     = errors.New("email address not verified")
	ErrInvalidCredentials  = errors.New("incorrect password")

	ErrInvalidOTP      = errors.New("otp is invalid or already used")
	ErrOTPExpired      = errors.New("otp has expired")
	ErrActiveOTPExists = errors.New("an active otp already exists")

	ErrTaskNotFound           = errors.New("task not found")
	ErrPhoneNumberRequired    = errors.New("a phone number is required to post tasks")
	ErrMaxCompletionsRequired = errors.New("maximum completions is required for multiple assignment")

	ErrForbidden               = errors.New("operation not permitted")
	ErrWrongPassword           = errors.New("current password is incorrect")
	ErrPasswordConfirmMismatch = errors.New("new password and confirmation do not match")
	ErrPasswordUnchanged       = errors.New("new password must differ from the current one")
)
