package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUsernameTaken is returned when registering an existing username.
var ErrUsernameTaken = errors.New("storage: username already taken")

// User is a stored player account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	BirthDate    string // YYYY-MM-DD
	CreatedAt    time.Time
}

// CreateUser inserts a new account.
func (s *Store) CreateUser(u User) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO users (username, password_hash, first_name, last_name, email, birth_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.BirthDate,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("storage: cannot create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// UserByUsername looks an account up. It returns ErrNotFound when there is
// no such user.
func (s *Store) UserByUsername(username string) (User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, username, password_hash, first_name, last_name, email, birth_date, created_at
		 FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &u.BirthDate, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}

	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

// UsernameExists reports whether the username is registered.
func (s *Store) UsernameExists(username string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query user: %w", err)
	}
	return n > 0, nil
}
