package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

// Methods taking a *sqlx.Tx participate in a caller-managed transaction;
// counter adjustments must always run in the same transaction as the
// relationship write they mirror.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	UpdateDetails(ctx context.Context, id int64, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, id int64, coverURL string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHashed string) error
	// AdjustSubscriberCount applies delta and returns the committed counter value.
	AdjustSubscriberCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error)
	// GetChannelProfile returns the channel page aggregates for a username.
	// viewerID controls the is_subscribed flag; nil means unauthenticated.
	GetChannelProfile(ctx context.Context, username string, viewerID *int64) (*model.ChannelProfile, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// List returns published videos matching opts, newest first unless
	// opts says otherwise.
	List(ctx context.Context, opts model.VideoListOptions, offset, limit int) ([]model.Video, error)
	// ListByChannel returns a channel's videos including unpublished drafts.
	ListByChannel(ctx context.Context, ownerID int64, offset, limit int) ([]model.Video, error)
	Update(ctx context.Context, id int64, title, description, thumbnailURL *string) (*model.Video, error)
	// Delete removes the video and cascades to its comments, likes, playlist
	// references, and watch history inside the given transaction.
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	TogglePublish(ctx context.Context, id int64) (*model.Video, error)
	AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error)
	IncrementViews(ctx context.Context, id int64) error
	RecordWatch(ctx context.Context, userID, videoID int64) error
	GetWatchHistory(ctx context.Context, userID int64, offset, limit int) ([]model.WatchHistoryEntry, error)
}

type CommentRepository interface {
	Create(ctx context.Context, videoID, ownerID int64, content string) (*model.Comment, error)
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByVideo(ctx context.Context, videoID int64, offset, limit int) ([]model.Comment, error)
	Update(ctx context.Context, id int64, content string) (*model.Comment, error)
	// Delete removes the comment and any likes on it in the given transaction.
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error)
}

type LikeRepository interface {
	// Insert reports whether a new like was created; an existing
	// (user, subject) pair leaves the store untouched and returns false.
	Insert(ctx context.Context, tx *sqlx.Tx, userID int64, subject model.LikeSubject, subjectID int64) (bool, error)
	Delete(ctx context.Context, tx *sqlx.Tx, userID int64, subject model.LikeSubject, subjectID int64) (bool, error)
	Count(ctx context.Context, subject model.LikeSubject, subjectID int64) (int, error)
	ListLikedVideos(ctx context.Context, userID int64, offset, limit int) ([]model.Video, error)
}

type SubscriptionRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, subscriberID, channelID int64) (bool, error)
	Delete(ctx context.Context, tx *sqlx.Tx, subscriberID, channelID int64) (bool, error)
	Exists(ctx context.Context, subscriberID, channelID int64) (bool, error)
	ListSubscribers(ctx context.Context, channelID int64, offset, limit int) ([]model.ChannelSummary, error)
	ListSubscribedTo(ctx context.Context, subscriberID int64, offset, limit int) ([]model.ChannelSummary, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Playlist, error)
	Update(ctx context.Context, id int64, name, description *string) (*model.Playlist, error)
	Delete(ctx context.Context, id int64) error
	// AddVideo reports whether the reference was added; a duplicate
	// (playlist, video) pair returns false.
	AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error)
	RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error)
	GetVideos(ctx context.Context, playlistID int64) ([]model.Video, error)
}

type TweetRepository interface {
	Create(ctx context.Context, ownerID int64, content string) (*model.Tweet, error)
	GetByID(ctx context.Context, id int64) (*model.Tweet, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Tweet, error)
	Update(ctx context.Context, id int64, content string) (*model.Tweet, error)
	// Delete removes the tweet and any likes on it in the given transaction.
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error)
}

type DashboardRepository interface {
	// GetChannelStats aggregates video count, view sum, live subscriber
	// count, and like sum for a channel. Zero-video channels yield zeros.
	GetChannelStats(ctx context.Context, channelID int64) (*model.ChannelStats, error)
}
