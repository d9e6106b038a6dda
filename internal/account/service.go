package account

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"gestionretard/internal/store"
)

// DefaultRole is assigned when registration omits the role.
const DefaultRole = "professeur"

var (
	// ErrMissingFields signals a registration or login with empty required fields.
	ErrMissingFields = errors.New("name, email and password are required")
	// ErrEmailTaken signals a duplicate registration email.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUserNotFound signals a login with an unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadPassword signals a login with a wrong password.
	ErrBadPassword = errors.New("incorrect password")
)

// User is a teacher account. The password hash never leaves the service.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

type userStore interface {
	Insert(ctx context.Context, name, email, passwordHash, role string) (User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// Service handles registration and login.
type Service struct {
	repo userStore
}

// NewService creates a service backed by a user repository.
func NewService(repo userStore) *Service {
	return &Service{repo: repo}
}

// Register creates a teacher account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (User, error) {
	if name == "" || email == "" || password == "" {
		return User{}, ErrMissingFields
	}
	if role == "" {
		role = DefaultRole
	}
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if existing != nil {
		return User{}, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	user, err := s.repo.Insert(ctx, name, email, string(hash), role)
	if err != nil {
		// Concurrent registration can still hit the unique index.
		if store.IsUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return user, nil
}

// Login checks credentials and returns the matching user.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrMissingFields
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if user == nil {
		return User{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrBadPassword
	}
	return *user, nil
}
