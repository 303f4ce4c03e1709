package resource

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) addOp() huma.Operation {
	return huma.Operation{
		OperationID:   "resources-add",
		Method:        http.MethodPost,
		Path:          "/resources",
		Summary:       "Create a resource",
		Description:   "Creates a resource with an owner permission for the caller and the caller's encrypted secret, atomically.",
		Tags:          []string{"resources"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError},
	}
}
