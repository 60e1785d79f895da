package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/db"
	"github.com/proofdesk/portal/internal/model"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an isolated in-memory database and runs the real
// migrations against it.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := sqlx.Connect("sqlite", dsn)
	require.NoError(t, err)
	database.SetMaxOpenConns(1)

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	t.Cleanup(func() { _ = database.Close() })
	return database
}

func seedArtwork(t *testing.T, repo ArtworkRepository, id, accountID, email, status string, createdAt time.Time) *model.ArtworkFile {
	t.Helper()

	artwork := &model.ArtworkFile{
		ID:          id,
		AccountID:   accountID,
		Email:       email,
		Name:        id + ".pdf",
		StorageURL:  "https://cdn.example.com/artwork/" + id + ".pdf",
		StoragePath: "artwork/" + id + ".pdf",
		MimeType:    "application/pdf",
		Size:        1024,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, repo.Create(artwork))
	return artwork
}
