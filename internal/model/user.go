package model

import (
	"errors"
	"time"
)

// User represents a registered account. A user acting as a content owner is a
// "channel", the subject of subscriptions.
type User struct {
	ID              int64     `db:"id" json:"id"`
	Username        string    `db:"username" json:"username"`
	Email           string    `db:"email" json:"email"`
	FullName        string    `db:"full_name" json:"full_name"`
	PasswordHashed  string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	AvatarURL       *string   `db:"avatar_url" json:"avatar_url"`
	CoverImageURL   *string   `db:"cover_image_url" json:"cover_image_url"`
	SubscriberCount int       `db:"subscriber_count" json:"subscriber_count"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ChannelSummary is the reduced projection used when a user appears inside
// another resource (video owner, subscriber list, comment author). It never
// carries credential or token material.
type ChannelSummary struct {
	ID       int64   `db:"id" json:"id"`
	Username string  `db:"username" json:"username"`
	FullName string  `db:"full_name" json:"full_name"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url"`
}

// ChannelProfile is a user augmented with subscription aggregates for the
// channel page.
type ChannelProfile struct {
	ID                        int64   `db:"id" json:"id"`
	Username                  string  `db:"username" json:"username"`
	Email                     string  `db:"email" json:"email"`
	FullName                  string  `db:"full_name" json:"full_name"`
	AvatarURL                 *string `db:"avatar_url" json:"avatar_url"`
	CoverImageURL             *string `db:"cover_image_url" json:"cover_image_url"`
	SubscribersCount          int     `db:"subscribers_count" json:"subscribers_count"`
	ChannelsSubscribedToCount int     `db:"channels_subscribed_to_count" json:"channels_subscribed_to_count"`
	IsSubscribed              bool    `db:"-" json:"is_subscribed"`
}

// RegisterRequest represents the data needed to register a new user.
// Avatar and cover image arrive as multipart files and are uploaded before
// the record is created.
type RegisterRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Password  string  `json:"password"`
	AvatarURL *string `json:"-"`
	CoverURL  *string `json:"-"`
}

// LoginRequest accepts either username or email.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAccountRequest is the request body for updating account details.
type UpdateAccountRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ChangePasswordRequest is the request body for changing the password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when attempting to create a user with a taken email
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")
)
