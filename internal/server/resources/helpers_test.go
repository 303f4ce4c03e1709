package resources

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/openpgp/armor" //nolint:staticcheck
)

const (
	actingUserID = "6f1c1a9e-5a43-4d3e-9c3a-0d7d1f0b2a11"
	otherUserID  = "0b7c3d1e-2f4a-4b5c-8d6e-7f8091a2b3c4"
)

var actor = identity.AccessControl{UserID: actingUserID, Role: identity.RoleUser}

// armored wraps payload in a PGP MESSAGE armor block.
func armored(t *testing.T, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, "PGP MESSAGE", nil)
	require.NoError(t, err)
	_, err = w.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.String()
}

// canonicalPayload is a valid v2 request body.
func canonicalPayload(t *testing.T) map[string]any {
	t.Helper()
	return map[string]any{
		"name":        "mail",
		"username":    "ada",
		"uri":         "https://mail.example.com",
		"description": "work mailbox",
		"secrets": []any{
			map[string]any{"data": armored(t, "ciphertext")},
		},
	}
}
