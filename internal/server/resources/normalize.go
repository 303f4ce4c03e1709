package resources

import (
	"fmt"
	"maps"
	"math"
)

const (
	APIVersion1 = "v1"
	APIVersion2 = "v2"
)

// SecretInput is one recipient's encrypted payload as sent by the client.
type SecretInput struct {
	UserID string
	Data   string
}

// PermissionInput is a client-asserted grant. The builder never persists it;
// it is kept so the service can report that it was overridden.
type PermissionInput struct {
	ARO           string
	AROForeignKey string
	ACO           string
	Type          int
}

// CreationRequest is the canonical creation input after normalization.
type CreationRequest struct {
	Name        string
	Username    string
	URI         string
	Description string
	Secrets     []SecretInput
	Permissions []PermissionInput

	// Malformed lists field paths that were present with the wrong JSON type.
	Malformed []string
}

// Normalize maps a raw payload into a CreationRequest. For APIVersion2 (also
// the default for an empty hint) the payload is already canonical. Any other
// hint is treated as the legacy shape, where the fields live under "Resource"
// and the secrets under "Secret". Unknown keys are dropped.
func Normalize(raw map[string]any, apiVersion string) CreationRequest {
	return project(Canonicalize(raw, apiVersion))
}

// Canonicalize returns raw in the canonical key layout. The result is what
// subscribers see as Event.Data, whatever shape the client sent.
func Canonicalize(raw map[string]any, apiVersion string) map[string]any {
	if apiVersion != "" && apiVersion != APIVersion2 {
		return fromLegacy(raw)
	}
	return raw
}

func fromLegacy(raw map[string]any) map[string]any {
	out := map[string]any{}
	if res, ok := raw["Resource"].(map[string]any); ok {
		maps.Copy(out, res)
	}
	if sec, ok := raw["Secret"]; ok {
		out["secrets"] = sec
	}
	return out
}

type projector struct {
	malformed []string
}

func project(m map[string]any) CreationRequest {
	var p projector
	req := CreationRequest{
		Name:        p.str(m, "name", "name"),
		Username:    p.str(m, "username", "username"),
		URI:         p.str(m, "uri", "uri"),
		Description: p.str(m, "description", "description"),
	}

	for i, item := range p.list(m, "secrets") {
		path := fmt.Sprintf("secrets[%d]", i)
		sm, ok := item.(map[string]any)
		if !ok {
			// placeholder keeps later indices aligned with the input
			p.bad(path)
			req.Secrets = append(req.Secrets, SecretInput{})
			continue
		}
		req.Secrets = append(req.Secrets, SecretInput{
			UserID: p.str(sm, "user_id", path+".user_id"),
			Data:   p.str(sm, "data", path+".data"),
		})
	}

	for i, item := range p.list(m, "permissions") {
		path := fmt.Sprintf("permissions[%d]", i)
		pm, ok := item.(map[string]any)
		if !ok {
			p.bad(path)
			req.Permissions = append(req.Permissions, PermissionInput{})
			continue
		}
		req.Permissions = append(req.Permissions, PermissionInput{
			ARO:           p.str(pm, "aro", path+".aro"),
			AROForeignKey: p.str(pm, "aro_foreign_key", path+".aro_foreign_key"),
			ACO:           p.str(pm, "aco", path+".aco"),
			Type:          p.integer(pm, "type", path+".type"),
		})
	}

	req.Malformed = p.malformed
	return req
}

func (p *projector) bad(path string) {
	p.malformed = append(p.malformed, path)
}

func (p *projector) str(m map[string]any, key, path string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		p.bad(path)
		return ""
	}
	return s
}

// integer accepts JSON numbers (float64) with an integral value.
func (p *projector) integer(m map[string]any, key, path string) int {
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	}
	p.bad(path)
	return 0
}

// list returns m[key] as a slice. A lone object is accepted as a one-element
// list, which is how some legacy clients send a single Secret.
func (p *projector) list(m map[string]any, key string) []any {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	switch l := v.(type) {
	case []any:
		return l
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out
	case map[string]any:
		return []any{l}
	}
	p.bad(key)
	return nil
}
