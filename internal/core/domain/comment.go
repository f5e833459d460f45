package domain

import "time"

// Comment is a supervisor or employee annotation on an activity.
// Created once, immutable thereafter.
type Comment struct {
	CommentID   string    `json:"commentID"`
	ActivityID  string    `json:"activityID"`
	AuthorID    string    `json:"authorID"`
	Text        string    `json:"text"`
	CommentedAt time.Time `json:"commentedAt"`

	// AuthorName is populated on composed reads for display.
	AuthorName string `json:"authorName,omitempty"`
}
