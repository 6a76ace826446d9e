// Package users holds the user model and its storage layer. Registration and
// login logic lives in the auth package; this package only knows how user
// records are persisted and retrieved.
package users

// User represents a user record as stored by the storage collaborator.
// The password hash is part of the stored record and is returned verbatim by
// the registration endpoint, mirroring the service's observed contract.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}
