// Package auditlog records resource creation in the action_logs table. It
// writes through the event's transaction, so the entry rolls back together
// with the resource.
package auditlog

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/resources"
	"github.com/google/uuid"
)

const ActionResourcesAdd = "ResourcesAdd"

type Subscriber struct {
	repoManager repomanager.RepositoryManager
}

func New(repoManager repomanager.RepositoryManager) *Subscriber {
	return &Subscriber{repoManager: repoManager}
}

func (s *Subscriber) OnResourceCreated(ctx context.Context, e *resources.Event) error {
	entry := &models.ActionLog{
		ID:         uuid.NewString(),
		UserID:     e.AccessControl.UserID,
		Action:     ActionResourcesAdd,
		ResourceID: e.Resource.ID,
		Created:    e.Resource.Created,
	}
	if err := s.repoManager.ActionLogs(e.Tx).Create(ctx, entry); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
