package account

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// Default account seeded on first start so the game is playable without
// registering.
const (
	DefaultUsername = "p"
	DefaultPassword = "testuser"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown user or a
	// wrong password. The two cases are not distinguished.
	ErrInvalidCredentials = errors.New("account: invalid username or password")
	// ErrMissingCredentials is returned by Login when a field is empty.
	ErrMissingCredentials = errors.New("account: please enter username and password")
)

// Store is the persistence the service needs.
type Store interface {
	CreateUser(u storage.User) (int64, error)
	UserByUsername(username string) (storage.User, error)
	UsernameExists(username string) (bool, error)
	ClearHistory(username string) error
}

// Service registers and authenticates players.
type Service struct {
	store  Store
	cost   int
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithNow overrides the clock used to validate birth dates.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an account service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Register validates the form and stores a new account.
func (s *Service) Register(r Registration) (storage.User, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	verr, _ := AsValidation(r.Validate(s.now()))
	if verr == nil {
		verr = &ValidationError{}
	}

	if r.Username != "" {
		exists, err := s.store.UsernameExists(r.Username)
		if err != nil {
			return storage.User{}, err
		}
		if exists {
			verr.add(FieldUsername, "This username already exists")
		}
	}
	if len(verr.Fields) > 0 {
		return storage.User{}, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return storage.User{}, fmt.Errorf("account: cannot hash password: %w", err)
	}

	u := storage.User{
		Username:     r.Username,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(r.FirstName),
		LastName:     strings.TrimSpace(r.LastName),
		Email:        r.Email,
		BirthDate:    r.BirthDate,
	}
	id, err := s.store.CreateUser(u)
	if errors.Is(err, storage.ErrUsernameTaken) {
		// Lost a race with another session.
		return storage.User{}, &ValidationError{Fields: []FieldError{{FieldUsername, "This username already exists"}}}
	}
	if err != nil {
		return storage.User{}, err
	}
	u.ID = id

	s.logger.Info("registered", "user", u.Username)
	return u, nil
}

// Login checks a username and password pair.
func (s *Service) Login(username, password string) (storage.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return storage.User{}, ErrMissingCredentials
	}

	u, err := s.store.UserByUsername(username)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return storage.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("login failed", "user", username)
		return storage.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Logout ends a session. The player's match history is discarded with it.
func (s *Service) Logout(username string) error {
	if err := s.store.ClearHistory(username); err != nil {
		return err
	}
	s.logger.Info("logged out", "user", username)
	return nil
}

// EnsureDefaultUser creates the default account if it is missing.
func (s *Service) EnsureDefaultUser() error {
	exists, err := s.store.UsernameExists(DefaultUsername)
	if err != nil || exists {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), s.cost)
	if err != nil {
		return fmt.Errorf("account: cannot hash password: %w", err)
	}
	_, err = s.store.CreateUser(storage.User{
		Username:     DefaultUsername,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Email:        "test@example.com",
		BirthDate:    "2000-01-01",
	})
	if errors.Is(err, storage.ErrUsernameTaken) {
		return nil
	}
	return err
}
