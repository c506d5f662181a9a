package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the engagement stream
const (
	EventVideoWatched = "video_watched"
)

// Stream names
const (
	StreamEngagement = "stream:engagement"
)

// Consumer group name for engagement workers
const (
	ConsumerGroupEngagement = "engagement_workers"
)

// EngagementEvent represents an event published to the engagement stream.
type EngagementEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when event occurred

	VideoID int64 `json:"video_id,omitempty"`

	// ViewerID is zero for anonymous views; the worker still bumps the
	// view counter but records no watch history.
	ViewerID int64 `json:"viewer_id,omitempty"`
}

// NewVideoWatchedEvent creates an event for a video playback request.
// Worker will increment the view counter and upsert the viewer's history.
func NewVideoWatchedEvent(videoID, viewerID int64) EngagementEvent {
	return EngagementEvent{
		Type:      EventVideoWatched,
		Timestamp: time.Now().Unix(),
		VideoID:   videoID,
		ViewerID:  viewerID,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so we serialize to JSON in a "data" field.
func (e EngagementEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseEngagementEvent parses an EngagementEvent from Redis stream message values.
func ParseEngagementEvent(values map[string]interface{}) (EngagementEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return EngagementEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event EngagementEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return EngagementEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
