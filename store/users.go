package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

type (
	// User is the identity document. Tokens holds every live session
	// token in issuance order; PasswordHash never leaves the backend.
	User struct {
		ID           string
		Email        string
		PasswordHash string
		Tokens       []TokenEntry
	}

	TokenEntry struct {
		Access string
		Token  string
	}
)

// InsertUser persists a new user document, assigning its id.
// A second user with the same email fails with DuplicateEmail.
func (s *Store) InsertUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `insert into users (user_id, email, email_hash64, password_hash) values (?, ?, ?, ?)`,
		u.ID, u.Email, hash64(u.Email), u.PasswordHash)
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return DuplicateEmail{Email: u.Email}
	} else if err != nil {
		return fmt.Errorf("unable to store user document, cause %w", err)
	}
	for _, entry := range u.Tokens {
		if err := s.AppendToken(ctx, u.ID, entry); err != nil {
			return err
		}
	}
	return nil
}

// SaveUser updates the mutable fields of an existing user document
// (upsert semantics on the id). Tokens are managed through AppendToken
// and RemoveToken, mirroring how the list is only ever grown or
// trimmed one entry at a time.
func (s *Store) SaveUser(ctx context.Context, u *User) error {
	res, err := s.db.ExecContext(ctx, `update users set email = ?, email_hash64 = ?, password_hash = ? where user_id = ?`,
		u.Email, hash64(u.Email), u.PasswordHash, u.ID)
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return DuplicateEmail{Email: u.Email}
	} else if err != nil {
		return fmt.Errorf("unable to save user document, cause %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return s.InsertUser(ctx, u)
	}
	return nil
}

// FindUserByEmail loads the user document registered under email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.findUser(ctx, `select user_id, email, password_hash from users where email_hash64 = ? and email = ?`,
		"user", email, hash64(email), email)
}

// FindUserByID loads the user document with the given id.
func (s *Store) FindUserByID(ctx context.Context, id string) (*User, error) {
	return s.findUser(ctx, `select user_id, email, password_hash from users where user_id = ?`,
		"user", id, id)
}

// FindUserByToken loads the user document with the given id whose
// token list contains the exact (access, token) pair. It is the
// membership filter behind token verification, therefore a revoked
// token never matches even when its signature is still intact.
func (s *Store) FindUserByToken(ctx context.Context, id, access, token string) (*User, error) {
	return s.findUser(ctx, `select u.user_id, u.email, u.password_hash from users u
	inner join tokens t on t.user_id = u.user_id
	where u.user_id = ? and t.token_hash64 = ? and t.token = ? and t.access = ?`,
		"user", id, id, hash64(token), token, access)
}

func (s *Store) findUser(ctx context.Context, query, kind, ref string, args ...interface{}) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound{Kind: kind, Ref: ref}
	} else if err != nil {
		return nil, fmt.Errorf("unable to load user document, cause %w", err)
	}
	u.Tokens, err = s.loadTokens(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AppendToken adds one entry to the end of the user's token list.
func (s *Store) AppendToken(ctx context.Context, userID string, entry TokenEntry) error {
	_, err := s.db.ExecContext(ctx, `insert into tokens (user_id, access, token, token_hash64) values (?, ?, ?, ?)`,
		userID, entry.Access, entry.Token, hash64(entry.Token))
	if err != nil {
		return fmt.Errorf("unable to append token to user %v, cause %w", userID, err)
	}
	return nil
}

// RemoveToken drops the entry with the exact token string from the
// user's token list. Removing a token that is not there is not an
// error, the list simply stays as it was.
func (s *Store) RemoveToken(ctx context.Context, userID, token string) error {
	_, err := s.db.ExecContext(ctx, `delete from tokens where user_id = ? and token_hash64 = ? and token = ?`,
		userID, hash64(token), token)
	if err != nil {
		return fmt.Errorf("unable to remove token from user %v, cause %w", userID, err)
	}
	return nil
}

func (s *Store) loadTokens(ctx context.Context, userID string) ([]TokenEntry, error) {
	rows, err := s.db.QueryContext(ctx, `select access, token from tokens where user_id = ? order by seq asc`, userID)
	if err != nil {
		return nil, fmt.Errorf("unable to load tokens of user %v, cause %w", userID, err)
	}
	defer rows.Close()
	var out []TokenEntry
	for rows.Next() {
		var entry TokenEntry
		err = rows.Scan(&entry.Access, &entry.Token)
		if err != nil {
			return nil, fmt.Errorf("unable to scan token entry, cause %v", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
