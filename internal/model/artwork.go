package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	ArtworkStatusPendingReview  = "pending_review"
	ArtworkStatusInReview       = "in_review"
	ArtworkStatusPrepress       = "prepress"
	ArtworkStatusProofReady     = "proof_ready"
	ArtworkStatusApproved       = "approved"
	ArtworkStatusRevisionNeeded = "revision_needed"
)

const (
	ApprovalApproveAsIs = "approve_as_is"
	ApprovalNotApproved = "not_approved"
)

// ProofChecklist is the 10-point verification a customer confirms before
// signing off a proof. Stored as a JSON snapshot on the artwork row.
type ProofChecklist struct {
	DesignCorrect     bool `json:"design_correct"`
	DimensionsCorrect bool `json:"dimensions_correct"`
	ColorsCorrect     bool `json:"colors_correct"`
	BleedCorrect      bool `json:"bleed_correct"`
	ResolutionOK      bool `json:"resolution_ok"`
	TypographyOK      bool `json:"typography_ok"`
	SpellingChecked   bool `json:"spelling_checked"`
	BarcodeScannable  bool `json:"barcode_scannable"`
	MaterialCorrect   bool `json:"material_correct"`
	QuantityCorrect   bool `json:"quantity_correct"`
}

// AllConfirmed reports whether every checklist item is checked.
func (c ProofChecklist) AllConfirmed() bool {
	return c.DesignCorrect &&
		c.DimensionsCorrect &&
		c.ColorsCorrect &&
		c.BleedCorrect &&
		c.ResolutionOK &&
		c.TypographyOK &&
		c.SpellingChecked &&
		c.BarcodeScannable &&
		c.MaterialCorrect &&
		c.QuantityCorrect
}

func (c ProofChecklist) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *ProofChecklist) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = ProofChecklist{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into ProofChecklist", src)
	}
}

// ArtworkFile is one uploaded design file moving through review.
// A row may be associated to its customer by account id, by email, or both.
type ArtworkFile struct {
	ID              string         `db:"id"`
	AccountID       string         `db:"account_id"` // empty when only email-keyed
	Email           string         `db:"email"`      // empty when only account-keyed
	OrderID         string         `db:"order_id"`   // optional order linkage
	OrderNumber     string         `db:"order_number"`
	Name            string         `db:"name"`
	StorageURL      string         `db:"storage_url"`
	StoragePath     string         `db:"storage_path"`
	MimeType        string         `db:"mime_type"`
	Size            int64          `db:"size"`
	Status          string         `db:"status"`
	CustomerComment string         `db:"customer_comment"`
	Checklist       ProofChecklist `db:"checklist"`
	ApprovalType    string         `db:"approval_type"` // "" = undecided
	ApproverName    string         `db:"approver_name"`
	ApproverCompany string         `db:"approver_company"`
	ApprovalDate    *time.Time     `db:"approval_date"`
	ApprovalNotes   string         `db:"approval_notes"`
	RevisionCount   int            `db:"revision_count"`
	DeletedAt       *time.Time     `db:"deleted_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Deleted reports whether the artwork sits in the bin.
func (a *ArtworkFile) Deleted() bool {
	return a.DeletedAt != nil
}

// AwaitingApproval reports whether the customer may run the approval gate.
func (a *ArtworkFile) AwaitingApproval() bool {
	return a.Status == ArtworkStatusProofReady && !a.Deleted()
}

// StatusInfo is the presentational mapping for one artwork status.
type StatusInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// statusInfos is the closed status -> presentation table. Every status the
// state machine knows has exactly one entry; tests enforce exhaustiveness.
var statusInfos = map[string]StatusInfo{
	ArtworkStatusPendingReview:  {Label: "Pending Review", Color: "gray", Icon: "clock"},
	ArtworkStatusInReview:       {Label: "In Review", Color: "blue", Icon: "eye"},
	ArtworkStatusPrepress:       {Label: "In Prepress", Color: "indigo", Icon: "settings"},
	ArtworkStatusProofReady:     {Label: "Proof Ready", Color: "amber", Icon: "file-check"},
	ArtworkStatusApproved:       {Label: "Approved", Color: "green", Icon: "check-circle"},
	ArtworkStatusRevisionNeeded: {Label: "Revision Needed", Color: "red", Icon: "rotate-ccw"},
}

// ArtworkStatuses lists every status the state machine knows.
func ArtworkStatuses() []string {
	return []string{
		ArtworkStatusPendingReview,
		ArtworkStatusInReview,
		ArtworkStatusPrepress,
		ArtworkStatusProofReady,
		ArtworkStatusApproved,
		ArtworkStatusRevisionNeeded,
	}
}

// ArtworkStatusInfo returns the presentation for a status, falling back to
// the pending-review entry for anything unknown.
func ArtworkStatusInfo(status string) StatusInfo {
	info, ok := statusInfos[status]
	if ok {
		return info
	}
	return statusInfos[ArtworkStatusPendingReview]
}
