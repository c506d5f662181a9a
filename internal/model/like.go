package model

import (
	"errors"
	"time"
)

// LikeSubject identifies the kind of entity being liked.
type LikeSubject string

const (
	SubjectVideo   LikeSubject = "video"
	SubjectComment LikeSubject = "comment"
	SubjectTweet   LikeSubject = "tweet"
)

// Valid reports whether the subject type is one of the likeable kinds.
func (s LikeSubject) Valid() bool {
	switch s {
	case SubjectVideo, SubjectComment, SubjectTweet:
		return true
	}
	return false
}

// Like links a user to a likeable subject. At most one Like exists per
// (user, subject) pair, enforced by a unique index.
type Like struct {
	ID          int64       `db:"id" json:"id"`
	UserID      int64       `db:"user_id" json:"user_id"`
	SubjectType LikeSubject `db:"subject_type" json:"subject_type"`
	SubjectID   int64       `db:"subject_id" json:"subject_id"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// Toggle states reported back to the caller.
const (
	LikeStateLiked   = "liked"
	LikeStateUnliked = "unliked"
)

// ToggleResult reports the relationship state after a toggle and the subject's
// counter value as committed by the same transaction.
type ToggleResult struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// LikedVideosResponse is the paginated list of videos the caller has liked.
type LikedVideosResponse struct {
	Videos []Video `json:"videos"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// Like errors
var (
	ErrInvalidSubjectType = errors.New("invalid like subject type")
)
