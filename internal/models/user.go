package models

// User is a registered account. Each user owns a catalog of albums; albums
// of different users never interact.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the login name. Unique across all users.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
