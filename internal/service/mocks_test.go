package service

import (
	"context"
	"sync"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// mockTx serializes transaction bodies with a mutex, standing in for the
// row-level locking the database provides. fn receives a nil *sqlx.Tx; the
// mock repositories never touch it.
type mockTx struct {
	mu sync.Mutex
}

func (m *mockTx) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(nil)
}

// The mocks embed their interface so each test only fills in the methods it
// drives. Calling an unset method panics, which is the failure we want.

type mockUserRepo struct {
	repository.UserRepository
	existsFn                func(ctx context.Context, id int64) (bool, error)
	existsByUsernameFn      func(ctx context.Context, username string) (bool, error)
	existsByEmailFn         func(ctx context.Context, email string) (bool, error)
	createFn                func(ctx context.Context, user *model.User) error
	getByIDFn               func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameOrEmailFn  func(ctx context.Context, username, email string) (*model.User, error)
	updatePasswordFn        func(ctx context.Context, id int64, passwordHashed string) error
	adjustSubscriberCountFn func(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error)
}

func (m *mockUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.existsByUsernameFn(ctx, username)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.existsByEmailFn(ctx, email)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	return m.getByUsernameOrEmailFn(ctx, username, email)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHashed string) error {
	return m.updatePasswordFn(ctx, id, passwordHashed)
}

func (m *mockUserRepo) AdjustSubscriberCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
	return m.adjustSubscriberCountFn(ctx, tx, id, delta)
}

type mockVideoRepo struct {
	repository.VideoRepository
	createFn          func(ctx context.Context, video *model.Video) error
	getByIDFn         func(ctx context.Context, id int64) (*model.Video, error)
	existsFn          func(ctx context.Context, id int64) (bool, error)
	deleteFn          func(ctx context.Context, tx *sqlx.Tx, id int64) error
	togglePublishFn   func(ctx context.Context, id int64) (*model.Video, error)
	adjustLikeCountFn func(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error)
	listByChannelFn   func(ctx context.Context, ownerID int64, offset, limit int) ([]model.Video, error)
}

func (m *mockVideoRepo) Create(ctx context.Context, video *model.Video) error {
	return m.createFn(ctx, video)
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockVideoRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

func (m *mockVideoRepo) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	return m.deleteFn(ctx, tx, id)
}

func (m *mockVideoRepo) TogglePublish(ctx context.Context, id int64) (*model.Video, error) {
	return m.togglePublishFn(ctx, id)
}

func (m *mockVideoRepo) AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
	return m.adjustLikeCountFn(ctx, tx, id, delta)
}

func (m *mockVideoRepo) ListByChannel(ctx context.Context, ownerID int64, offset, limit int) ([]model.Video, error) {
	return m.listByChannelFn(ctx, ownerID, offset, limit)
}

type mockCommentRepo struct {
	repository.CommentRepository
	createFn          func(ctx context.Context, videoID, ownerID int64, content string) (*model.Comment, error)
	getByIDFn         func(ctx context.Context, id int64) (*model.Comment, error)
	existsFn          func(ctx context.Context, id int64) (bool, error)
	updateFn          func(ctx context.Context, id int64, content string) (*model.Comment, error)
	deleteFn          func(ctx context.Context, tx *sqlx.Tx, id int64) error
	adjustLikeCountFn func(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, videoID, ownerID int64, content string) (*model.Comment, error) {
	return m.createFn(ctx, videoID, ownerID, content)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockCommentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

func (m *mockCommentRepo) Update(ctx context.Context, id int64, content string) (*model.Comment, error) {
	return m.updateFn(ctx, id, content)
}

func (m *mockCommentRepo) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	return m.deleteFn(ctx, tx, id)
}

func (m *mockCommentRepo) AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
	return m.adjustLikeCountFn(ctx, tx, id, delta)
}

type mockTweetRepo struct {
	repository.TweetRepository
	createFn          func(ctx context.Context, ownerID int64, content string) (*model.Tweet, error)
	getByIDFn         func(ctx context.Context, id int64) (*model.Tweet, error)
	existsFn          func(ctx context.Context, id int64) (bool, error)
	updateFn          func(ctx context.Context, id int64, content string) (*model.Tweet, error)
	deleteFn          func(ctx context.Context, tx *sqlx.Tx, id int64) error
	adjustLikeCountFn func(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error)
}

func (m *mockTweetRepo) Create(ctx context.Context, ownerID int64, content string) (*model.Tweet, error) {
	return m.createFn(ctx, ownerID, content)
}

func (m *mockTweetRepo) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTweetRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

func (m *mockTweetRepo) Update(ctx context.Context, id int64, content string) (*model.Tweet, error) {
	return m.updateFn(ctx, id, content)
}

func (m *mockTweetRepo) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	return m.deleteFn(ctx, tx, id)
}

func (m *mockTweetRepo) AdjustLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) (int, error) {
	return m.adjustLikeCountFn(ctx, tx, id, delta)
}

type mockLikeRepo struct {
	repository.LikeRepository
	insertFn func(ctx context.Context, tx *sqlx.Tx, userID int64, subject model.LikeSubject, subjectID int64) (bool, error)
	deleteFn func(ctx context.Context, tx *sqlx.Tx, userID int64, subject model.LikeSubject, subjectID int64) (bool, error)
}

func (m *mockLikeRepo) Insert(ctx context.Context, tx *sqlx.Tx, userID int64, subject model.LikeSubject, subjectID int64) (bool, error) {
	return m.insertFn(ctx, tx, userID, subject, subjectID)
}

func (m *mockLikeRepo) Delete(ctx context.Context, tx *sqlx.Tx, userID int64, subject model.LikeSubject, subjectID int64) (bool, error) {
	return m.deleteFn(ctx, tx, userID, subject, subjectID)
}

type mockSubscriptionRepo struct {
	repository.SubscriptionRepository
	insertFn func(ctx context.Context, tx *sqlx.Tx, subscriberID, channelID int64) (bool, error)
	deleteFn func(ctx context.Context, tx *sqlx.Tx, subscriberID, channelID int64) (bool, error)
}

func (m *mockSubscriptionRepo) Insert(ctx context.Context, tx *sqlx.Tx, subscriberID, channelID int64) (bool, error) {
	return m.insertFn(ctx, tx, subscriberID, channelID)
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, tx *sqlx.Tx, subscriberID, channelID int64) (bool, error) {
	return m.deleteFn(ctx, tx, subscriberID, channelID)
}

type mockPlaylistRepo struct {
	repository.PlaylistRepository
	createFn      func(ctx context.Context, playlist *model.Playlist) error
	getByIDFn     func(ctx context.Context, id int64) (*model.Playlist, error)
	deleteFn      func(ctx context.Context, id int64) error
	addVideoFn    func(ctx context.Context, playlistID, videoID int64) (bool, error)
	removeVideoFn func(ctx context.Context, playlistID, videoID int64) (bool, error)
	getVideosFn   func(ctx context.Context, playlistID int64) ([]model.Video, error)
}

func (m *mockPlaylistRepo) Create(ctx context.Context, playlist *model.Playlist) error {
	return m.createFn(ctx, playlist)
}

func (m *mockPlaylistRepo) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockPlaylistRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockPlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	return m.addVideoFn(ctx, playlistID, videoID)
}

func (m *mockPlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	return m.removeVideoFn(ctx, playlistID, videoID)
}

func (m *mockPlaylistRepo) GetVideos(ctx context.Context, playlistID int64) ([]model.Video, error) {
	return m.getVideosFn(ctx, playlistID)
}

type mockDashboardRepo struct {
	repository.DashboardRepository
	getChannelStatsFn func(ctx context.Context, channelID int64) (*model.ChannelStats, error)
}

func (m *mockDashboardRepo) GetChannelStats(ctx context.Context, channelID int64) (*model.ChannelStats, error) {
	return m.getChannelStatsFn(ctx, channelID)
}

type mockStatsCache struct {
	getFn        func(ctx context.Context, channelID int64) (*model.ChannelStats, bool, error)
	setFn        func(ctx context.Context, channelID int64, stats *model.ChannelStats) error
	invalidateFn func(ctx context.Context, channelID int64) error
}

func (m *mockStatsCache) GetStats(ctx context.Context, channelID int64) (*model.ChannelStats, bool, error) {
	return m.getFn(ctx, channelID)
}

func (m *mockStatsCache) SetStats(ctx context.Context, channelID int64, stats *model.ChannelStats) error {
	return m.setFn(ctx, channelID, stats)
}

func (m *mockStatsCache) Invalidate(ctx context.Context, channelID int64) error {
	return m.invalidateFn(ctx, channelID)
}
