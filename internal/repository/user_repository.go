package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/kunstewi/account-service/internal/model"
)

// publicColumns is the default projection: the credential columns are
// deliberately absent so they cannot travel further than the callers that
// opt in via the WithAuth variants.
const publicColumns = "id,email,username,created_at,updated_at"

const authColumns = publicColumns + ",pass_salt,pass_hash,session_token"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with its registration credentials and returns the
// stored record. The caller has already checked the email for duplicates,
// but the unique index still backs the check: a racing insert surfaces as
// ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, username, salt, passHash string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, username, pass_salt, pass_hash) VALUES (?,?,?,?)",
		email, username, salt, passHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email, public projection only.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanPublic(r.DB.QueryRowContext(ctx,
		"SELECT "+publicColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByEmailWithAuth fetches a user by normalized email including the
// credential columns. Only the login flow needs this projection.
func (r *UserRepo) GetByEmailWithAuth(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanAuth(r.DB.QueryRowContext(ctx,
		"SELECT "+authColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id, public projection only.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanPublic(r.DB.QueryRowContext(ctx,
		"SELECT "+publicColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetBySessionToken resolves a session token to its user. A token that
// matches no row means the session is stale or was never issued; callers
// receive ErrNotFound and should treat the request as unauthenticated.
func (r *UserRepo) GetBySessionToken(ctx context.Context, token string) (model.User, error) {
	return r.scanPublic(r.DB.QueryRowContext(ctx,
		"SELECT "+publicColumns+" FROM users WHERE session_token=? LIMIT 1", token))
}

// List returns all users, public projection only.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+publicColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUsername changes the username of an existing user and returns the
// updated record, or ErrNotFound when the id does not exist.
func (r *UserRepo) UpdateUsername(ctx context.Context, id uint64, username string) (model.User, error) {
	// Fetch first: an UPDATE that writes the same value reports zero
	// affected rows on MySQL, so rows-affected cannot distinguish
	// "missing" from "unchanged".
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.User{}, err
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=? WHERE id=?", username, id); err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user and returns the record as it was at deletion,
// including the credential columns so the caller can drop any cached
// session entry. Returns ErrNotFound when the id does not exist.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (model.User, error) {
	u, err := r.scanAuth(r.DB.QueryRowContext(ctx,
		"SELECT "+authColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err != nil {
		return model.User{}, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// SetSessionToken overwrites the stored session token for a user. Each
// successful login calls this, so the most recent login wins and earlier
// tokens stop resolving.
func (r *UserRepo) SetSessionToken(ctx context.Context, id uint64, token string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET session_token=? WHERE id=?", token, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Same token twice also reports zero rows; confirm the user exists
		// before declaring it missing.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepo) scanPublic(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func (r *UserRepo) scanAuth(row *sql.Row) (model.User, error) {
	var (
		u     model.User
		token sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt, &u.UpdatedAt,
		&u.Auth.Salt, &u.Auth.PasswordHash, &token)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if token.Valid {
		u.Auth.SessionToken = token.String
	}
	return u, err
}
