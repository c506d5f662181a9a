package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/model"
)

func TestRegisterDuplicateChecks(t *testing.T) {
	repo := &mockUserRepo{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return username == "taken", nil
		},
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return email == "taken@example.com", nil
		},
	}
	svc := NewUserService(repo, &mockVideoRepo{})
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Username: "taken", Email: "new@example.com", FullName: "A B", Password: "secret",
	})
	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("duplicate username: got %v, want ErrUsernameExists", err)
	}

	_, err = svc.Register(ctx, &model.RegisterRequest{
		Username: "fresh", Email: "taken@example.com", FullName: "A B", Password: "secret",
	})
	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("duplicate email: got %v, want ErrEmailExists", err)
	}
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) { return false, nil },
		existsByEmailFn:    func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, user *model.User) error {
			created = user
			user.ID = 1
			return nil
		},
	}
	svc := NewUserService(repo, &mockVideoRepo{})

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "Alice", Email: "Alice@Example.COM", FullName: "Alice A", Password: "secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Username != "alice" || created.Email != "alice@example.com" {
		t.Errorf("username/email not lowercased: %q %q", created.Username, created.Email)
	}
	if created.PasswordHashed == "secret" || created.PasswordHashed == "" {
		t.Error("password stored without hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte("secret")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	repo := &mockUserRepo{
		getByUsernameOrEmailFn: func(ctx context.Context, username, email string) (*model.User, error) {
			return &model.User{ID: 1, Username: "alice", PasswordHashed: string(hash)}, nil
		},
	}
	svc := NewUserService(repo, &mockVideoRepo{})

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownAccountHidesExistence(t *testing.T) {
	repo := &mockUserRepo{
		getByUsernameOrEmailFn: func(ctx context.Context, username, email string) (*model.User, error) {
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewUserService(repo, &mockVideoRepo{})

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "ghost", Password: "x"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestChangePasswordVerifiesOld(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.MinCost)
	var updatedHash string
	repo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, PasswordHashed: string(hash)}, nil
		},
		updatePasswordFn: func(ctx context.Context, id int64, passwordHashed string) error {
			updatedHash = passwordHashed
			return nil
		},
	}
	svc := NewUserService(repo, &mockVideoRepo{})
	ctx := context.Background()

	err := svc.ChangePassword(ctx, 1, &model.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "new"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("wrong old password: got %v, want ErrInvalidCredentials", err)
	}

	if err := svc.ChangePassword(ctx, 1, &model.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updatedHash), []byte("new")); err != nil {
		t.Errorf("new hash does not verify: %v", err)
	}
}
