package resources

import (
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/google/uuid"
)

// Build turns a normalized request into a complete candidate resource owned
// by uac. Only allow-listed fields are copied from req; client permissions are
// replaced by a single owner grant and the first secret is attributed to the
// acting user. A candidate that fails validation is returned as a
// *ValidationError.
func Build(req CreationRequest, uac identity.AccessControl, now time.Time) (*models.Resource, error) {
	now = now.UTC()

	res := &models.Resource{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Username:    req.Username,
		URI:         req.URI,
		Description: req.Description,
		CreatedBy:   uac.UserID,
		ModifiedBy:  uac.UserID,
		Created:     now,
		Modified:    now,
	}

	res.Permissions = []*models.Permission{{
		ID:            uuid.NewString(),
		ACO:           models.ACOResource,
		ACOForeignKey: res.ID,
		ARO:           models.AROUser,
		AROForeignKey: uac.UserID,
		Type:          models.PermissionOwner,
		Created:       now,
		Modified:      now,
	}}

	for i, in := range req.Secrets {
		userID := in.UserID
		if i == 0 {
			userID = uac.UserID
		}
		res.Secrets = append(res.Secrets, &models.Secret{
			ID:         uuid.NewString(),
			ResourceID: res.ID,
			UserID:     userID,
			Data:       in.Data,
			Created:    now,
			Modified:   now,
		})
	}

	verr := Validate(res, uac.UserID)
	for _, path := range req.Malformed {
		verr.Add(path, CodeType)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
