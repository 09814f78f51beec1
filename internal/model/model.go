// Package model defines the entities shared across the devotional API.
package model

import "time"

// DayCompletion marks a single day of a devotional plan as completed.
type DayCompletion struct {
	Day         int       `json:"day"`
	CompletedAt time.Time `json:"completed_at"`
}

// DevotionalProgress tracks which days of a plan a user has completed.
type DevotionalProgress struct {
	PlanID      string          `json:"plan_id"`
	Completions []DayCompletion `json:"completions"`
}

// JournalEntry is a free-text reflection tied to a devotional day.
type JournalEntry struct {
	ID           string    `json:"id"`
	DevotionalID string    `json:"devotional_id"`
	Day          int       `json:"day"`
	Subject      string    `json:"subject"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// Bookmark saves a scripture passage with an optional note.
type Bookmark struct {
	ID        string    `json:"id"`
	Passage   string    `json:"passage"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StreakResult is the derived streak state shown by the app. It is
// recomputed from progress and journal snapshots on every request and
// never persisted.
type StreakResult struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Badge         string `json:"badge"`
}

// ValidationResult is the verdict for a single free-text input.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Error   string `json:"error,omitempty"`
}

// CreateJournalRequest is the payload for creating a journal entry.
type CreateJournalRequest struct {
	DevotionalID string `json:"devotional_id" validate:"required"`
	Day          int    `json:"day" validate:"required,gte=1"`
	Subject      string `json:"subject" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

// CreateBookmarkRequest is the payload for saving a passage bookmark.
type CreateBookmarkRequest struct {
	Passage string `json:"passage" validate:"required,passageref"`
	Note    string `json:"note"`
}

// UpdateNameRequest is the payload for changing the profile display name.
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required"`
}
