package services

import "errors"

// Failure classes surfaced by the services. Handlers map these to HTTP
// statuses with errors.Is; anything unrecognized becomes a 500.
var (
	// ErrEmailRegistered is returned when registering an email that already
	// has an account, verified or not.
	ErrEmailRegistered = errors.New("email already registered")

	// ErrUserNotFound is returned when no account matches the given email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidOTP is returned when the submitted OTP does not exactly match
	// the stored one, including after the stored OTP has been consumed.
	ErrInvalidOTP = errors.New("invalid OTP")

	// ErrNotVerified is returned when an unverified account attempts to log in.
	ErrNotVerified = errors.New("account not verified")

	// ErrAccountBanned is returned when a banned account attempts to log in.
	ErrAccountBanned = errors.New("account banned")

	// ErrInvalidCredentials is returned when the password comparison fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAdmin is returned on the admin login path when the account is
	// missing or lacks the admin flag; both cases share one message so the
	// admin path does not become a user-enumeration channel.
	ErrNotAdmin = errors.New("not an admin user")

	// ErrJournalNotFound covers both a missing journal and a journal owned by
	// someone else. Callers cannot tell the two apart.
	ErrJournalNotFound = errors.New("journal not found")
)
