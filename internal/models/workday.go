package models

import (
	"database/sql"
	"time"
)

// Workday is the DB representation of a workday row.
type Workday struct {
	WorkdayID    string         `db:"workday_id"`
	UserID       string         `db:"user_id"`
	SupervisorID sql.NullString `db:"supervisor_id"`
	WorkDate     time.Time      `db:"work_date"`
	CheckinAt    time.Time      `db:"checkin_at"`
	CheckoutAt   sql.NullTime   `db:"checkout_at"`
	Approved     bool           `db:"approved"`
	Notes        sql.NullString `db:"notes"`
	AuditFields
}

// Activity is the DB representation of an activity row.
type Activity struct {
	ActivityID       string         `db:"activity_id"`
	WorkdayID        string         `db:"workday_id"`
	Task             string         `db:"task"`
	Goal             string         `db:"goal"`
	StateID          string         `db:"state_id"`
	Observation      sql.NullString `db:"observation"`
	Carried          bool           `db:"carried"`
	OriginActivityID sql.NullString `db:"origin_activity_id"`
	AuditFields
}

// Comment is the DB representation of a comment row.
type Comment struct {
	CommentID   string    `db:"comment_id"`
	ActivityID  string    `db:"activity_id"`
	AuthorID    string    `db:"author_id"`
	Text        string    `db:"comment_text"`
	CommentedAt time.Time `db:"commented_at"`
}

// AuditEntry is the DB representation of an audit log row.
type AuditEntry struct {
	EntryID     string         `db:"entry_id"`
	UserID      string         `db:"user_id"`
	Action      string         `db:"action"`
	Description sql.NullString `db:"description"`
	RecordedAt  time.Time      `db:"recorded_at"`
}
