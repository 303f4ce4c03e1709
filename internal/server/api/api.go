// Package api defines the response documents shared by the gRPC and HTTP
// transports.
package api

import (
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	MessageResourceAdded   = "The resource has been added successfully."
	MessageValidationError = "Could not validate resource data."
	MessageInternalError   = "The resource could not be added."
)

type Header struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Permission struct {
	ID            string    `json:"id"`
	ACO           string    `json:"aco"`
	ACOForeignKey string    `json:"aco_foreign_key"`
	ARO           string    `json:"aro"`
	AROForeignKey string    `json:"aro_foreign_key"`
	Type          int       `json:"type"`
	Created       time.Time `json:"created"`
	Modified      time.Time `json:"modified"`
}

type Secret struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	UserID     string    `json:"user_id"`
	Data       string    `json:"data"`
	Created    time.Time `json:"created"`
	Modified   time.Time `json:"modified"`
}

type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ForeignKey string    `json:"foreign_key"`
	Created    time.Time `json:"created"`
}

// Resource is a created resource as seen by the acting user.
type Resource struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Username    string      `json:"username"`
	URI         string      `json:"uri"`
	Description string      `json:"description"`
	Deleted     bool        `json:"deleted"`
	CreatedBy   string      `json:"created_by"`
	ModifiedBy  string      `json:"modified_by"`
	Created     time.Time   `json:"created"`
	Modified    time.Time   `json:"modified"`
	Creator     User        `json:"creator"`
	Modifier    User        `json:"modifier"`
	Favorite    *Favorite   `json:"favorite"`
	Secrets     []Secret    `json:"secrets"`
	Permission  *Permission `json:"permission"`
}

type AddResourceResponse struct {
	Header Header   `json:"header"`
	Body   Resource `json:"body"`
}

// ValidationErrorResponse carries field path to rule codes.
type ValidationErrorResponse struct {
	Header Header              `json:"header"`
	Body   map[string][]string `json:"body"`
}

func NewResource(v *models.ResourceView) Resource {
	out := Resource{
		ID:          v.ID,
		Name:        v.Name,
		Username:    v.Username,
		URI:         v.URI,
		Description: v.Description,
		Deleted:     v.Deleted,
		CreatedBy:   v.CreatedBy,
		ModifiedBy:  v.ModifiedBy,
		Created:     v.Created,
		Modified:    v.Modified,
		Creator:     User{ID: v.Creator.ID, Username: v.Creator.Username},
		Modifier:    User{ID: v.Modifier.ID, Username: v.Modifier.Username},
		Secrets:     []Secret{},
	}
	if v.Favorite != nil {
		out.Favorite = &Favorite{
			ID:         v.Favorite.ID,
			UserID:     v.Favorite.UserID,
			ForeignKey: v.Favorite.ForeignKey,
			Created:    v.Favorite.Created,
		}
	}
	if v.Secret != nil {
		out.Secrets = append(out.Secrets, Secret{
			ID:         v.Secret.ID,
			ResourceID: v.Secret.ResourceID,
			UserID:     v.Secret.UserID,
			Data:       v.Secret.Data,
			Created:    v.Secret.Created,
			Modified:   v.Secret.Modified,
		})
	}
	if p := v.Permission; p != nil {
		out.Permission = &Permission{
			ID:            p.ID,
			ACO:           p.ACO,
			ACOForeignKey: p.ACOForeignKey,
			ARO:           p.ARO,
			AROForeignKey: p.AROForeignKey,
			Type:          p.Type,
			Created:       p.Created,
			Modified:      p.Modified,
		}
	}
	return out
}

func NewValidationErrorResponse(fields map[string][]string) ValidationErrorResponse {
	return ValidationErrorResponse{
		Header: Header{Status: StatusError, Message: MessageValidationError},
		Body:   fields,
	}
}

func NewAddResourceResponse(v *models.ResourceView) AddResourceResponse {
	return AddResourceResponse{
		Header: Header{Status: StatusSuccess, Message: MessageResourceAdded},
		Body:   NewResource(v),
	}
}
