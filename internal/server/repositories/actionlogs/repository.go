package actionlogs

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, l *models.ActionLog) error
}
