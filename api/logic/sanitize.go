/* sanitize.go
 * Contains guest display-name sanitation and invite-code normalization.
 */

package logic

import (
	"regexp"
	"strings"

	"matchroom/api/shared"
	"matchroom/api/store"
)

const MaxGuestNameLength = 20

var (
	guestNamePattern  = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
	invalidGuestChars = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
	inviteCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// SanitizeGuests validates every guest name in a group and returns the cleaned
// list plus whether a rewrite is needed. Entries without an id or name are
// dropped. Names that are too long or carry disallowed characters are stripped
// to alphanumerics and spaces, truncated and trimmed; entries whose name
// sanitizes away entirely are removed.
func SanitizeGuests(guests []store.Guest) ([]store.Guest, bool) {
	needsCleaning := false
	valid := make([]store.Guest, 0, len(guests))

	for _, guest := range guests {
		if guest.ID == "" || guest.Name == "" {
			continue
		}

		if len(guest.Name) > MaxGuestNameLength || !guestNamePattern.MatchString(guest.Name) {
			needsCleaning = true

			sanitized := invalidGuestChars.ReplaceAllString(guest.Name, "")
			if len(sanitized) > MaxGuestNameLength {
				sanitized = sanitized[:MaxGuestNameLength]
			}
			sanitized = strings.TrimSpace(sanitized)

			if sanitized != "" {
				valid = append(valid, store.Guest{ID: guest.ID, Name: sanitized})
			}
		} else {
			valid = append(valid, guest)
		}
	}

	return valid, needsCleaning
}

// NormalizeInviteCode trims and uppercases an invite code and validates its
// shape: exactly 8 characters, letters and digits only.
func NormalizeInviteCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if len(code) != 8 {
		return "", shared.Validationf("Invite code must be 8 characters")
	}
	if !inviteCodePattern.MatchString(code) {
		return "", shared.Validationf("Invite code must contain only letters and numbers")
	}
	return code, nil
}
