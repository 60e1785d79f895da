package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/model"
)

// Comments are append-only: there is deliberately no update or delete.
type CommentRepository interface {
	Create(comment *model.ArtworkComment) error
	ByArtwork(artworkID string, limit, offset int) ([]*model.ArtworkComment, error)
	CountByArtwork(artworkID string) (int, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.ArtworkComment) error {
	query := `INSERT INTO artwork_comments (id, artwork_id, author_role, author_name, author_email, message, kind, file_url, file_name, file_size, file_type, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		comment.ID,
		comment.ArtworkID,
		comment.AuthorRole,
		comment.AuthorName,
		comment.AuthorEmail,
		comment.Message,
		comment.Kind,
		comment.FileURL,
		comment.FileName,
		comment.FileSize,
		comment.FileType,
		comment.CreatedAt,
	)

	return err
}

func (r *commentRepository) ByArtwork(artworkID string, limit, offset int) ([]*model.ArtworkComment, error) {
	var comments []*model.ArtworkComment
	query := `SELECT * FROM artwork_comments WHERE artwork_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	err := r.db.Select(&comments, query, artworkID, limit, offset)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) CountByArtwork(artworkID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM artwork_comments WHERE artwork_id = $1`
	err := r.db.QueryRow(query, artworkID).Scan(&count)
	return count, err
}
