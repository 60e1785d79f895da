package handler

import (
	"time"

	"github.com/proofdesk/portal/internal/model"
)

// ArtworkResponse is the wire shape for one artwork file, carrying the
// status presentation alongside the raw status.
type ArtworkResponse struct {
	ID              string               `json:"id"`
	OrderID         string               `json:"order_id,omitempty"`
	OrderNumber     string               `json:"order_number,omitempty"`
	Name            string               `json:"name"`
	URL             string               `json:"url"`
	MimeType        string               `json:"mime_type"`
	Size            int64                `json:"size"`
	Status          string               `json:"status"`
	StatusInfo      model.StatusInfo     `json:"status_info"`
	CustomerComment string               `json:"customer_comment,omitempty"`
	Checklist       model.ProofChecklist `json:"checklist"`
	ApprovalType    string               `json:"approval_type,omitempty"`
	ApproverName    string               `json:"approver_name,omitempty"`
	ApproverCompany string               `json:"approver_company,omitempty"`
	ApprovalDate    *time.Time           `json:"approval_date,omitempty"`
	ApprovalNotes   string               `json:"approval_notes,omitempty"`
	RevisionCount   int                  `json:"revision_count"`
	DeletedAt       *time.Time           `json:"deleted_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func NewArtworkResponse(a *model.ArtworkFile) ArtworkResponse {
	return ArtworkResponse{
		ID:              a.ID,
		OrderID:         a.OrderID,
		OrderNumber:     a.OrderNumber,
		Name:            a.Name,
		URL:             a.StorageURL,
		MimeType:        a.MimeType,
		Size:            a.Size,
		Status:          a.Status,
		StatusInfo:      model.ArtworkStatusInfo(a.Status),
		CustomerComment: a.CustomerComment,
		Checklist:       a.Checklist,
		ApprovalType:    a.ApprovalType,
		ApproverName:    a.ApproverName,
		ApproverCompany: a.ApproverCompany,
		ApprovalDate:    a.ApprovalDate,
		ApprovalNotes:   a.ApprovalNotes,
		RevisionCount:   a.RevisionCount,
		DeletedAt:       a.DeletedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func NewArtworkResponses(artworks []*model.ArtworkFile) []ArtworkResponse {
	responses := make([]ArtworkResponse, 0, len(artworks))
	for _, a := range artworks {
		responses = append(responses, NewArtworkResponse(a))
	}
	return responses
}

// CommentResponse is the wire shape for one thread entry. DisplayText is
// the synthesized fallback for file-only messages; Message stays exactly
// what the author typed.
type CommentResponse struct {
	ID          string    `json:"id"`
	ArtworkID   string    `json:"artwork_id"`
	AuthorRole  string    `json:"author_role"`
	AuthorName  string    `json:"author_name,omitempty"`
	Message     string    `json:"message"`
	DisplayText string    `json:"display_text"`
	Kind        string    `json:"kind"`
	FileURL     string    `json:"file_url,omitempty"`
	FileName    string    `json:"file_name,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	FileType    string    `json:"file_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCommentResponse(c *model.ArtworkComment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		ArtworkID:   c.ArtworkID,
		AuthorRole:  c.AuthorRole,
		AuthorName:  c.AuthorName,
		Message:     c.Message,
		DisplayText: c.DisplayText(),
		Kind:        c.Kind,
		FileURL:     c.FileURL,
		FileName:    c.FileName,
		FileSize:    c.FileSize,
		FileType:    c.FileType,
		CreatedAt:   c.CreatedAt,
	}
}

func NewCommentResponses(comments []*model.ArtworkComment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, NewCommentResponse(c))
	}
	return responses
}
