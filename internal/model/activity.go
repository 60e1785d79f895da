package model

import (
	"time"
)

const (
	ActivityArtworkUploaded  = "artwork_uploaded"
	ActivityArtworkApproved  = "artwork_approved"
	ActivityRevisionRequested = "revision_requested"
	ActivityArtworkBinned    = "artwork_binned"
	ActivityArtworkRestored  = "artwork_restored"
	ActivityArtworkPurged    = "artwork_purged"
	ActivityCommentPosted    = "comment_posted"
)

// ActivityEntry is one best-effort audit row. Details is a JSON object.
type ActivityEntry struct {
	ID        string    `db:"id"`
	AccountID string    `db:"account_id"`
	Email     string    `db:"email"`
	Action    string    `db:"action"`
	Details   string    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}
