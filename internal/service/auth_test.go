package service

import (
	"context"
	"errors"
	"testing"

	"minigames_webapp/internal/domain"
	"minigames_webapp/internal/repository"
)

// fakeUserStore - in-memory UserStore для тестов без БД.
type fakeUserStore struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return u, nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())
	ctx := context.Background()

	u, err := svc.Register(ctx, "Player@Example.com", "hunter22", "Player One")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "player@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash == "hunter22" || u.PasswordHash == "" {
		t.Fatalf("password not hashed")
	}
	if u.GamesPlayed != 0 || u.GamesWon != 0 {
		t.Fatalf("counters must start at zero")
	}

	got, err := svc.Login(ctx, "player@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected user %d, got %d", u.ID, got.ID)
	}
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@b.c", "pw123456", "A"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "a@b.c", "pw123456", "A2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_BadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@b.c", "pw123456", "A"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "a@b.c", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@b.c", "pw123456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
