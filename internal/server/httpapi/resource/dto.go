package resource

import (
	"net/http"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/api"
)

type addInput struct {
	APIVersion string         `query:"api-version" enum:"v1,v2" default:"v2" doc:"Request shape: v1 wraps fields in Resource and Secret, v2 is flat"`
	Body       map[string]any `doc:"Resource fields and secrets; unknown fields are ignored"`
}

type addOutput struct {
	Body api.AddResourceResponse
}

// validationProblem is returned as the 400 body; it lists rule codes per
// field path.
type validationProblem struct {
	api.ValidationErrorResponse
}

func (p *validationProblem) Error() string  { return p.Header.Message }
func (p *validationProblem) GetStatus() int { return http.StatusBadRequest }
