package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/model"
)

var (
	ErrArtworkNotFound = errors.New("artwork not found")

	// ErrNotAwaitingApproval is returned when a decision write finds the
	// artwork no longer in proof_ready — including when a second submission
	// races a first one. The losing write changes nothing.
	ErrNotAwaitingApproval = errors.New("artwork not awaiting approval")

	// ErrNotInBin is returned by restore/permanent-delete when the artwork
	// is not soft-deleted. Hard deletion is only reachable from the bin.
	ErrNotInBin = errors.New("artwork not in bin")
)

// DecisionUpdate carries the approval gate's single write.
type DecisionUpdate struct {
	Status          string
	Checklist       model.ProofChecklist
	ApprovalType    string
	ApproverName    string
	ApproverCompany string
	ApprovalNotes   string
	ApprovalDate    time.Time
}

type ArtworkRepository interface {
	Create(artwork *model.ArtworkFile) error
	ByID(id string) (*model.ArtworkFile, error)
	ActiveByIdentity(identity model.CustomerIdentity) ([]*model.ArtworkFile, error)
	DeletedByIdentity(identity model.CustomerIdentity) ([]*model.ArtworkFile, error)
	ApplyDecision(id string, upd DecisionUpdate) error
	SoftDelete(id string, at time.Time) error
	Restore(id string) error
	PermanentlyDelete(id string) error
}

type artworkRepository struct {
	db *sqlx.DB
}

func NewArtworkRepository(db *sqlx.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

func (r *artworkRepository) Create(artwork *model.ArtworkFile) error {
	query := `INSERT INTO artwork_files (id, account_id, email, order_id, order_number, name, storage_url, storage_path, mime_type, size, status, customer_comment, checklist, approval_type, approver_name, approver_company, approval_date, approval_notes, revision_count, deleted_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err := r.db.Exec(query,
		artwork.ID,
		artwork.AccountID,
		artwork.Email,
		artwork.OrderID,
		artwork.OrderNumber,
		artwork.Name,
		artwork.StorageURL,
		artwork.StoragePath,
		artwork.MimeType,
		artwork.Size,
		artwork.Status,
		artwork.CustomerComment,
		artwork.Checklist,
		artwork.ApprovalType,
		artwork.ApproverName,
		artwork.ApproverCompany,
		artwork.ApprovalDate,
		artwork.ApprovalNotes,
		artwork.RevisionCount,
		artwork.DeletedAt,
		artwork.CreatedAt,
		artwork.UpdatedAt,
	)

	return err
}

func (r *artworkRepository) ByID(id string) (*model.ArtworkFile, error) {
	artwork := &model.ArtworkFile{}
	query := `SELECT * FROM artwork_files WHERE id = $1`

	err := r.db.Get(artwork, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrArtworkNotFound
	}

	return artwork, err
}

// ActiveByIdentity returns non-deleted artwork matched by account id or
// case-insensitive email, newest first.
func (r *artworkRepository) ActiveByIdentity(identity model.CustomerIdentity) ([]*model.ArtworkFile, error) {
	clause, args := identityPredicate(identity, 1)
	if clause == "" {
		return []*model.ArtworkFile{}, nil
	}

	var artworks []*model.ArtworkFile
	query := `SELECT * FROM artwork_files WHERE ` + clause + ` AND deleted_at IS NULL ORDER BY created_at DESC`

	err := r.db.Select(&artworks, query, args...)
	if err != nil {
		return nil, err
	}

	return artworks, nil
}

// DeletedByIdentity returns the bin: soft-deleted artwork ordered by
// deletion time, newest first, falling back to creation time.
func (r *artworkRepository) DeletedByIdentity(identity model.CustomerIdentity) ([]*model.ArtworkFile, error) {
	clause, args := identityPredicate(identity, 1)
	if clause == "" {
		return []*model.ArtworkFile{}, nil
	}

	var artworks []*model.ArtworkFile
	query := `SELECT * FROM artwork_files WHERE ` + clause + ` AND deleted_at IS NOT NULL ORDER BY COALESCE(deleted_at, created_at) DESC`

	err := r.db.Select(&artworks, query, args...)
	if err != nil {
		return nil, err
	}

	return artworks, nil
}

// ApplyDecision is the approval gate's one write. The status guard makes
// the write conditional: a racing or repeated submission affects zero rows
// and gets ErrNotAwaitingApproval instead of silently overwriting.
func (r *artworkRepository) ApplyDecision(id string, upd DecisionUpdate) error {
	var query string
	args := []any{
		upd.Status,
		upd.Checklist,
		upd.ApprovalType,
		upd.ApproverName,
		upd.ApproverCompany,
		upd.ApprovalDate,
		upd.ApprovalNotes,
		time.Now(),
		id,
	}

	if upd.ApprovalType == model.ApprovalNotApproved {
		// A revision request also bumps the revision counter and replaces
		// the customer comment with the latest notes.
		query = `UPDATE artwork_files
		         SET status = $1, checklist = $2, approval_type = $3, approver_name = $4, approver_company = $5, approval_date = $6, approval_notes = $7, updated_at = $8,
		             revision_count = revision_count + 1, customer_comment = $7
		         WHERE id = $9 AND status = 'proof_ready' AND deleted_at IS NULL`
	} else {
		query = `UPDATE artwork_files
		         SET status = $1, checklist = $2, approval_type = $3, approver_name = $4, approver_company = $5, approval_date = $6, approval_notes = $7, updated_at = $8
		         WHERE id = $9 AND status = 'proof_ready' AND deleted_at IS NULL`
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotAwaitingApproval
	}

	return nil
}

// SoftDelete moves the artwork into the bin. Already-deleted rows are left
// untouched so a repeated delete cannot move the deletion timestamp.
func (r *artworkRepository) SoftDelete(id string, at time.Time) error {
	query := `UPDATE artwork_files SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	result, err := r.db.Exec(query, at, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrArtworkNotFound
	}

	return nil
}

func (r *artworkRepository) Restore(id string) error {
	query := `UPDATE artwork_files SET deleted_at = NULL, updated_at = $1 WHERE id = $2 AND deleted_at IS NOT NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotInBin
	}

	return nil
}

// PermanentlyDelete destroys the row. Only soft-deleted artwork qualifies:
// destruction always passes through the recoverable bin state first.
func (r *artworkRepository) PermanentlyDelete(id string) error {
	query := `DELETE FROM artwork_files WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotInBin
	}

	return nil
}
