package account

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users  map[string]User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]User{}, nextID: 1}
}

func (f *fakeUserStore) Insert(_ context.Context, name, email, passwordHash, role string) (User, error) {
	u := User{ID: f.nextID, Name: name, Email: email, PasswordHash: passwordHash, Role: role}
	f.nextID++
	f.users[email] = u
	return u, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := f.users[email]; ok {
		return &u, nil
	}
	return nil, nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newFakeUserStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dupont", "a@x.com", "s3cret", "")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.Role != DefaultRole {
		t.Fatalf("expected default role, got %s", user.Role)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password")
	}

	got, err := svc.Login(ctx, "a@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, got.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Dupont", "a@x.com", "pw", ""); err != nil {
		t.Fatalf("first register error: %v", err)
	}
	if _, err := svc.Register(ctx, "Martin", "a@x.com", "pw2", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewService(newFakeUserStore())
	if _, err := svc.Register(context.Background(), "", "a@x.com", "pw", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := NewService(newFakeUserStore())
	ctx := context.Background()
	if _, err := svc.Register(ctx, "Dupont", "a@x.com", "pw", ""); err != nil {
		t.Fatalf("register error: %v", err)
	}

	if _, err := svc.Login(ctx, "nobody@x.com", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrBadPassword) {
		t.Fatalf("expected ErrBadPassword, got %v", err)
	}
}
