package resources

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("resource rejected")
)

// FieldErrors is a server-side validation failure decoded from the
// InvalidArgument details: field path to rule codes.
type FieldErrors struct {
	Message string
	Fields  map[string][]string
}

func (e *FieldErrors) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, fmt.Sprintf("%s %s", p, strings.Join(e.Fields[p], ",")))
	}
	if len(parts) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

func (e *FieldErrors) Is(target error) bool {
	return target == ErrRejected
}
