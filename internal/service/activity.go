package service

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/proofdesk/portal/internal/model"
	"github.com/proofdesk/portal/internal/repository"
)

// ActivityService records audit entries. Recording is best-effort and
// asynchronous: a failed or slow insert never blocks or fails the
// operation being recorded.
type ActivityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Record logs an action with a detail map, fire-and-forget.
func (s *ActivityService) Record(identity model.CustomerIdentity, action string, details map[string]any) {
	entry := &model.ActivityEntry{
		ID:        uuid.New().String(),
		AccountID: identity.AccountID,
		Email:     identity.EmailLower(),
		Action:    action,
		Details:   "{}",
		CreatedAt: time.Now(),
	}

	if len(details) > 0 {
		b, err := json.Marshal(details)
		if err == nil {
			entry.Details = string(b)
		}
	}

	go func() {
		err := s.repo.Create(entry)
		if err != nil {
			slog.Warn("activity log write failed", "action", action, "error", err)
		}
	}()
}
