package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"vidtube/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, email, full_name, password_hashed, avatar_url, cover_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, subscriber_count, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		u.Username,
		u.Email,
		u.FullName,
		u.PasswordHashed,
		u.AvatarURL,
		u.CoverImageURL,
	)

	err := row.Scan(&u.ID, &u.SubscriberCount, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		// The service checks first, but a racing registration can still
		// trip the unique indexes.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "users_email_key" {
				return model.ErrEmailExists
			}
			return model.ErrUsernameExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, email, full_name, password_hashed, avatar_url, cover_image_url,
		       subscriber_count, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByUsernameOrEmail retrieves a user matching either identifier.
// Empty strings never match.
func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `
		SELECT id, username, email, full_name, password_hashed, avatar_url, cover_image_url,
		       subscriber_count, created_at, updated_at
		FROM users
		WHERE (username = $1 AND $1 <> '') OR (email = $2 AND $2 <> '')
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// ExistsByEmail checks if an email is already registered
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// Exists checks if a user exists by id
func (r *userRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// UpdateDetails sets full name and email.
func (r *userRepository) UpdateDetails(ctx context.Context, id int64, fullName, email string) (*model.User, error) {
	query := `
		UPDATE users SET full_name = $1, email = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, username, email, full_name, password_hashed, avatar_url, cover_image_url,
		          subscriber_count, created_at, updated_at
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, fullName, email, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user details: %w", err)
	}

	return &u, nil
}

// UpdateAvatar replaces the avatar URL.
func (r *userRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL string) (*model.User, error) {
	return r.updateImage(ctx, id, "avatar_url", avatarURL)
}

// UpdateCoverImage replaces the cover image URL.
func (r *userRepository) UpdateCoverImage(ctx context.Context, id int64, coverURL string) (*model.User, error) {
	return r.updateImage(ctx, id, "cover_image_url", coverURL)
}

func (r *userRepository) updateImage(ctx context.Context, id int64, column, url string) (*model.User, error) {
	// column is one of two fixed identifiers, never caller input
	query := fmt.Sprintf(`
		UPDATE users SET %s = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, username, email, full_name, password_hashed, avatar_url, cover_image_url,
		          subscriber_count, created_at, updated_at
	`, column)

	var u model.User
	err := r.db.GetContext(ctx, &u, query, url, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", column, err)
	}

	return &u, nil
}

// UpdatePassword replaces the stored password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHashed string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hashed = $1, updated_at = NOW() WHERE id = $2`,
		passwordHashed, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// AdjustSubscriberCount applies delta inside the caller's transaction and
// returns the counter value that transaction will commit.
func (r *userRepository) AdjustSubscriberCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
	query := `
		UPDATE users SET subscriber_count = subscriber_count + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING subscriber_count
	`

	var count int
	err := tx.GetContext(ctx, &count, query, delta, id)
	if err == sql.ErrNoRows {
		return 0, model.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust subscriber count: %w", err)
	}

	return count, nil
}

// GetChannelProfile builds the channel page projection: the user row plus
// inbound/outbound subscription counts and, when a viewer is present,
// whether the viewer subscribes to this channel. Counts come from the
// subscriptions table itself rather than the denormalized counter.
func (r *userRepository) GetChannelProfile(ctx context.Context, username string, viewerID *int64) (*model.ChannelProfile, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_image_url,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channels_subscribed_to_count
		FROM users u
		WHERE u.username = $1
	`

	var profile model.ChannelProfile
	err := r.db.GetContext(ctx, &profile, query, username)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}

	if viewerID != nil {
		var subscribed bool
		err := r.db.GetContext(ctx, &subscribed,
			`SELECT EXISTS(SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2)`,
			*viewerID, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
		profile.IsSubscribed = subscribed
	}

	return &profile, nil
}
