package service

import (
	"errors"
	"strings"
	"time"

	"github.com/proofdesk/portal/internal/model"
	"github.com/proofdesk/portal/internal/repository"
)

var (
	ErrChecklistIncomplete = errors.New("all checklist items must be confirmed")
	ErrApproverNameMissing = errors.New("approver name is required")
	ErrNotesRequired       = errors.New("revision notes are required when not approving")
	ErrInvalidDecision     = errors.New("invalid approval decision")
)

// ApprovalRequest is the customer's proof sign-off: the full checklist,
// the decision, and the signature.
type ApprovalRequest struct {
	Checklist       model.ProofChecklist `json:"checklist"`
	Decision        string               `json:"decision"`
	ApproverName    string               `json:"approver_name"`
	ApproverCompany string               `json:"approver_company"`
	Notes           string               `json:"notes"`
}

// Validate enforces the gate's preconditions. Nothing reaches the store
// until these pass.
func (r *ApprovalRequest) Validate() error {
	if r.Decision != model.ApprovalApproveAsIs && r.Decision != model.ApprovalNotApproved {
		return ErrInvalidDecision
	}
	if !r.Checklist.AllConfirmed() {
		return ErrChecklistIncomplete
	}
	if strings.TrimSpace(r.ApproverName) == "" {
		return ErrApproverNameMissing
	}
	if r.Decision == model.ApprovalNotApproved && strings.TrimSpace(r.Notes) == "" {
		return ErrNotesRequired
	}
	return nil
}

// ApprovalService is the gate between proof_ready and a definitive
// customer decision. No other customer-facing path may set a terminal
// status.
type ApprovalService struct {
	repo     repository.ArtworkRepository
	notify   *NotifyService
	activity *ActivityService
}

func NewApprovalService(repo repository.ArtworkRepository, notify *NotifyService, activity *ActivityService) *ApprovalService {
	return &ApprovalService{
		repo:     repo,
		notify:   notify,
		activity: activity,
	}
}

// Submit converts a proof_ready artwork into approved or revision_needed.
// The effect is exactly one conditional write; if the artwork left
// proof_ready in the meantime (staff action, a racing second submission)
// the write affects nothing and ErrNotAwaitingApproval surfaces.
func (s *ApprovalService) Submit(identity model.CustomerIdentity, artworkID string, req *ApprovalRequest) (*model.ArtworkFile, error) {
	err := req.Validate()
	if err != nil {
		return nil, err
	}

	artwork, err := s.repo.ByID(artworkID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(artwork, identity) {
		return nil, repository.ErrArtworkNotFound
	}
	if !artwork.AwaitingApproval() {
		return nil, repository.ErrNotAwaitingApproval
	}

	status := model.ArtworkStatusApproved
	if req.Decision == model.ApprovalNotApproved {
		status = model.ArtworkStatusRevisionNeeded
	}

	err = s.repo.ApplyDecision(artworkID, repository.DecisionUpdate{
		Status:          status,
		Checklist:       req.Checklist,
		ApprovalType:    req.Decision,
		ApproverName:    strings.TrimSpace(req.ApproverName),
		ApproverCompany: strings.TrimSpace(req.ApproverCompany),
		ApprovalNotes:   strings.TrimSpace(req.Notes),
		ApprovalDate:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	action := model.ActivityArtworkApproved
	if req.Decision == model.ApprovalNotApproved {
		action = model.ActivityRevisionRequested
	}
	s.activity.Record(identity, action, map[string]any{
		"artwork_id": artworkID,
		"approver":   req.ApproverName,
	})

	go s.notify.NotifyDecision(artworkID, artwork.Name, req.Decision, req.ApproverName)

	return s.repo.ByID(artworkID)
}
