package resources

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/openpgp/armor" //nolint:staticcheck // armor framing only, no crypto
)

// Rule codes reported in ValidationError.
const (
	CodeRequired       = "required"
	CodeEmpty          = "empty"
	CodeMaxLength      = "max_length"
	CodeUUID           = "uuid"
	CodeActingUser     = "acting_user"
	CodeOwnerRequired  = "owner_required"
	CodeInList         = "in_list"
	CodeMismatch       = "mismatch"
	CodeHasAccess      = "has_access"
	CodeArmoredMessage = "armored_message"
	CodeUnique         = "unique"
	CodeType           = "type"
	CodeUserExists     = "user_exists"
	CodeUTF8           = "utf8"
)

const (
	maxNameLength        = 255
	maxUsernameLength    = 255
	maxURILength         = 1024
	maxDescriptionLength = 10000

	armoredMessageType = "PGP MESSAGE"
)

// Validate checks a candidate resource and its permissions and secrets.
// It never fails fast; every violation is collected in the result, which is
// never nil.
func Validate(res *models.Resource, actingUserID string) *ValidationError {
	v := NewValidationError()
	validateFields(v, res)
	validateAudit(v, res, actingUserID)
	validatePermissions(v, res, actingUserID)
	validateSecrets(v, res)
	return v
}

func validateFields(v *ValidationError, res *models.Resource) {
	switch {
	case res.Name == "":
		v.Add("name", CodeRequired)
	case strings.TrimSpace(res.Name) == "":
		v.Add("name", CodeEmpty)
	case utf8.RuneCountInString(res.Name) > maxNameLength:
		v.Add("name", CodeMaxLength)
	}
	maxLength(v, "username", res.Username, maxUsernameLength)
	maxLength(v, "uri", res.URI, maxURILength)
	maxLength(v, "description", res.Description, maxDescriptionLength)

	for _, f := range []struct{ path, value string }{
		{"name", res.Name},
		{"username", res.Username},
		{"uri", res.URI},
		{"description", res.Description},
	} {
		if !isStorableText(f.value) {
			v.Add(f.path, CodeUTF8)
		}
	}
}

// isStorableText rejects what a PostgreSQL text column refuses: invalid UTF-8
// and NUL characters.
func isStorableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

func maxLength(v *ValidationError, path, s string, limit int) {
	if utf8.RuneCountInString(s) > limit {
		v.Add(path, CodeMaxLength)
	}
}

func validateAudit(v *ValidationError, res *models.Resource, actingUserID string) {
	for path, id := range map[string]string{"created_by": res.CreatedBy, "modified_by": res.ModifiedBy} {
		switch {
		case !isUUID(id):
			v.Add(path, CodeUUID)
		case id != actingUserID:
			v.Add(path, CodeActingUser)
		}
	}
}

func validatePermissions(v *ValidationError, res *models.Resource, actingUserID string) {
	if len(res.Permissions) != 1 {
		v.Add("permissions", CodeOwnerRequired)
	}
	for i, p := range res.Permissions {
		path := fmt.Sprintf("permissions[%d]", i)
		if p.ACO != models.ACOResource {
			v.Add(path+".aco", CodeInList)
		}
		if p.ACOForeignKey != res.ID {
			v.Add(path+".aco_foreign_key", CodeMismatch)
		}
		if p.ARO != models.AROUser {
			v.Add(path+".aro", CodeInList)
		}
		if p.AROForeignKey != actingUserID {
			v.Add(path+".aro_foreign_key", CodeActingUser)
		}
		if p.Type != models.PermissionOwner {
			v.Add(path+".type", CodeOwnerRequired)
		}
	}
}

func validateSecrets(v *ValidationError, res *models.Resource) {
	if len(res.Secrets) == 0 {
		v.Add("secrets", CodeRequired)
		return
	}

	// Only users holding a grant may receive a copy of the secret.
	grantees := map[string]bool{}
	for _, p := range res.Permissions {
		if p.ARO == models.AROUser {
			grantees[p.AROForeignKey] = true
		}
	}

	seen := map[string]bool{}
	for i, s := range res.Secrets {
		path := fmt.Sprintf("secrets[%d]", i)
		switch {
		case !isUUID(s.UserID):
			v.Add(path+".user_id", CodeUUID)
		case !grantees[s.UserID]:
			v.Add(path+".user_id", CodeHasAccess)
		}
		if s.UserID != "" {
			if seen[s.UserID] {
				v.Add("secrets", CodeUnique)
			}
			seen[s.UserID] = true
		}

		switch {
		case strings.TrimSpace(s.Data) == "":
			v.Add(path+".data", CodeRequired)
		case !isArmoredMessage(s.Data):
			v.Add(path+".data", CodeArmoredMessage)
		}
	}
}

// isUUID accepts only the canonical 36-character form.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// isArmoredMessage reports whether data is a well-formed ASCII-armored OpenPGP
// message block. The body is read to the end so the checksum is verified.
func isArmoredMessage(data string) bool {
	block, err := armor.Decode(strings.NewReader(data))
	if err != nil || block.Type != armoredMessageType {
		return false
	}
	_, err = io.Copy(io.Discard, block.Body)
	return err == nil
}
