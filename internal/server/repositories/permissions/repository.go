package permissions

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Permission) error
}
