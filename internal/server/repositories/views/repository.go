package views

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
)

type Repository interface {
	FindView(ctx context.Context, userID, resourceID string) (*models.ResourceView, error)
}
