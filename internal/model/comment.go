package model

import (
	"fmt"
	"time"
)

const (
	CommentAuthorCustomer = "customer"
	CommentAuthorStaff    = "staff"
)

const (
	CommentKindText = "text"
	CommentKindFile = "file"
)

// ArtworkComment is one entry in the append-only per-artwork thread.
// There is no edit or delete: the thread is the audit trail.
type ArtworkComment struct {
	ID          string    `db:"id"`
	ArtworkID   string    `db:"artwork_id"`
	AuthorRole  string    `db:"author_role"`
	AuthorName  string    `db:"author_name"`
	AuthorEmail string    `db:"author_email"`
	Message     string    `db:"message"` // may be empty when a file is attached
	Kind        string    `db:"kind"`
	FileURL     string    `db:"file_url"`
	FileName    string    `db:"file_name"`
	FileSize    int64     `db:"file_size"`
	FileType    string    `db:"file_type"`
	CreatedAt   time.Time `db:"created_at"`
}

// HasAttachment reports whether the comment carries a file.
func (c *ArtworkComment) HasAttachment() bool {
	return c.FileURL != ""
}

// DisplayText is the text shown for the comment. A file-only comment
// falls back to "Uploaded: <name>"; the fallback is synthesized here and
// never stored, so reads can tell user text from the placeholder.
func (c *ArtworkComment) DisplayText() string {
	if c.Message != "" {
		return c.Message
	}
	if c.HasAttachment() {
		return fmt.Sprintf("Uploaded: %s", c.FileName)
	}
	return ""
}
