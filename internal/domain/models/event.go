package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedEvent is the wire envelope published for every generated region feed.
type FeedEvent struct {
	EventID     string    `json:"event_id"`
	RegionID    string    `json:"region_id"`
	AnchorDate  string    `json:"anchor_date"`
	WindowDays  int       `json:"window_days"`
	Divergence  float64   `json:"divergence"`
	AlertLevel  string    `json:"alert_level"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AlertEvent is the wire envelope published when a divergence alert fires.
type AlertEvent struct {
	EventID   string    `json:"event_id"`
	RegionID  string    `json:"region_id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFeedEvent builds the publishable envelope for a region feed.
func NewFeedEvent(feed *RegionFeed) FeedEvent {
	level := string(AlertLevelOK)
	if len(feed.Alerts) > 0 {
		level = string(feed.Alerts[0].Level)
	}
	return FeedEvent{
		EventID:     uuid.NewString(),
		RegionID:    feed.RegionID,
		AnchorDate:  feed.AnchorDate.Format("2006-01-02"),
		WindowDays:  feed.WindowDays,
		Divergence:  feed.Divergence,
		AlertLevel:  level,
		GeneratedAt: feed.GeneratedAt,
	}
}

// NewAlertEvent builds the publishable envelope for one alert.
func NewAlertEvent(regionID string, alert Alert) AlertEvent {
	return AlertEvent{
		EventID:   uuid.NewString(),
		RegionID:  regionID,
		Level:     string(alert.Level),
		Category:  alert.Category,
		Title:     alert.Title,
		Message:   alert.Message,
		CreatedAt: time.Now().UTC(),
	}
}
