package resources

import (
	"errors"
	"slices"
	"sort"
	"strings"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrStorage      = errors.New("storage failure")
	ErrNotification = errors.New("notification failure")
	// ErrRehydrate means a just-created resource could not be read back.
	// It is always a server-side fault.
	ErrRehydrate = errors.New("resource view unavailable")
)

// ValidationError maps a field path (e.g. "secrets[0].data") to the rule
// codes it violated. It satisfies errors.Is(err, ErrValidation).
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add records code for path; duplicate codes are ignored.
func (e *ValidationError) Add(path, code string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	if slices.Contains(e.Fields[path], code) {
		return
	}
	e.Fields[path] = append(e.Fields[path], code)
}

func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for path, codes := range other.Fields {
		for _, c := range codes {
			e.Add(path, c)
		}
	}
}

func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Err returns nil for an empty set, so the result can be returned directly.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Paths returns the failing field paths in sorted order.
func (e *ValidationError) Paths() []string {
	if e == nil {
		return nil
	}
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	for i, p := range e.Paths() {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(p)
		b.WriteString(" ")
		b.WriteString(strings.Join(e.Fields[p], ","))
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
