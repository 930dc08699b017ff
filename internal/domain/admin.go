package domain

type Admin struct {
	ID       int64
	Username string

	// PasswordHash is a bcrypt hash, never the plaintext password.
	PasswordHash string
}
