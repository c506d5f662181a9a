package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// UserService handles business logic for account and channel operations
type UserService struct {
	repo      repository.UserRepository
	videoRepo repository.VideoRepository
}

func NewUserService(repo repository.UserRepository, videoRepo repository.VideoRepository) *UserService {
	return &UserService{
		repo:      repo,
		videoRepo: videoRepo,
	}
}

// Register creates a new user account. Avatar and cover URLs, when present,
// were uploaded by the caller before this runs.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	exists, err = s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       strings.ToLower(strings.TrimSpace(req.Username)),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:       strings.TrimSpace(req.FullName),
		PasswordHashed: string(hashedPassword),
		AvatarURL:      req.AvatarURL,
		CoverImageURL:  req.CoverURL,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates with username or email plus password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	if req.Username == "" && req.Email == "" {
		return nil, fmt.Errorf("username or email is required")
	}

	user, err := s.repo.GetByUsernameOrEmail(ctx, strings.ToLower(req.Username), strings.ToLower(req.Email))
	if err != nil {
		// Don't reveal whether the account exists
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateAccountDetails updates the caller's full name and email.
func (s *UserService) UpdateAccountDetails(ctx context.Context, userID int64, req *model.UpdateAccountRequest) (*model.User, error) {
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("full_name and email are required")
	}

	return s.repo.UpdateDetails(ctx, userID, strings.TrimSpace(req.FullName), strings.ToLower(strings.TrimSpace(req.Email)))
}

// ChangePassword verifies the old password before setting a new one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *model.ChangePasswordRequest) error {
	if strings.TrimSpace(req.NewPassword) == "" {
		return fmt.Errorf("new password is required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.OldPassword)); err != nil {
		return model.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// UpdateAvatar stores a freshly uploaded avatar URL on the account.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) (*model.User, error) {
	return s.repo.UpdateAvatar(ctx, userID, avatarURL)
}

// UpdateCoverImage stores a freshly uploaded cover image URL on the account.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID int64, coverURL string) (*model.User, error) {
	return s.repo.UpdateCoverImage(ctx, userID, coverURL)
}

// GetChannelProfile returns the channel page for a username, with live
// subscriber aggregates and the viewer's subscription state.
func (s *UserService) GetChannelProfile(ctx context.Context, username string, viewerID *int64) (*model.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	return s.repo.GetChannelProfile(ctx, strings.ToLower(username), viewerID)
}

// GetWatchHistory returns the caller's watch history, most recent first.
func (s *UserService) GetWatchHistory(ctx context.Context, userID int64, offset, limit int) ([]model.WatchHistoryEntry, error) {
	return s.videoRepo.GetWatchHistory(ctx, userID, offset, limit)
}
