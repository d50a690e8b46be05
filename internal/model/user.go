package model

import "time"

// Authentication groups the credential fields of a user.  These columns
// are excluded from every query projection unless a caller explicitly asks
// for them (login verification, session issuing), mirroring how the rest
// of the application treats them: never serialized, never logged.
//
// Fields:
//
//	Salt         – random value generated at registration, mixed into the
//	               password hash.
//	PasswordHash – one-way hash of (secret, salt, plaintext password).
//	SessionToken – hash issued at login, empty when no session is active.
type Authentication struct {
	Salt         string // users.pass_salt
	PasswordHash string // users.pass_hash
	SessionToken string // users.session_token (nullable in the schema)
}

// User represents an application user record as stored in the `users`
// table.  The struct carries no json tags: handlers expose users through
// PublicUser so the authentication fields cannot leak into a response by
// accident.
//
// Fields:
//
//	ID        – primary key identifier, immutable after creation.
//	Email     – unique email address, stored lower-cased.
//	Username  – display name, the only field PATCH may change.
//	Auth      – credential sub-record, zero unless explicitly selected.
//	CreatedAt – timestamp of creation.
//	UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64         // users.id
	Email     string         // users.email
	Username  string         // users.username
	Auth      Authentication // credential columns, opt-in projection
	CreatedAt time.Time      // users.created_at
	UpdatedAt time.Time      // users.updated_at
}

// PublicUser is the JSON shape handlers return for a user.
type PublicUser struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public strips the credential fields from a user record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
