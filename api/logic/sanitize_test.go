/* sanitize_test.go
 * Contains unit tests for sanitize.go functions
 */

package logic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchroom/api/shared"
	"matchroom/api/store"
)

// region SanitizeGuests tests

// TestSanitizeGuests_CleanListUntouched tests that a valid list reports no
// cleaning needed
func TestSanitizeGuests_CleanListUntouched(t *testing.T) {
	guests := []store.Guest{
		{ID: "g1", Name: "Alice Guest"},
		{ID: "g2", Name: "Bob 2"},
	}

	cleaned, needsCleaning := SanitizeGuests(guests)

	assert.False(t, needsCleaning)
	assert.Equal(t, guests, cleaned)
}

// TestSanitizeGuests_StripsInvalidCharacters tests removal of everything
// outside letters, digits and spaces
func TestSanitizeGuests_StripsInvalidCharacters(t *testing.T) {
	guests := []store.Guest{{ID: "g1", Name: "Al!ce <script>"}}

	cleaned, needsCleaning := SanitizeGuests(guests)

	assert.True(t, needsCleaning)
	require.Len(t, cleaned, 1)
	assert.Equal(t, "Alce script", cleaned[0].Name)
	assert.Equal(t, "g1", cleaned[0].ID)
}

// TestSanitizeGuests_TruncatesLongNames tests truncation to the maximum
// length followed by whitespace trimming
func TestSanitizeGuests_TruncatesLongNames(t *testing.T) {
	guests := []store.Guest{{ID: "g1", Name: strings.Repeat("a", 19) + " tail"}}

	cleaned, needsCleaning := SanitizeGuests(guests)

	assert.True(t, needsCleaning)
	require.Len(t, cleaned, 1)
	assert.Equal(t, strings.Repeat("a", 19), cleaned[0].Name)
	assert.LessOrEqual(t, len(cleaned[0].Name), MaxGuestNameLength)
}

// TestSanitizeGuests_DropsUnsalvageableNames tests that a name which
// sanitizes to nothing removes the entry
func TestSanitizeGuests_DropsUnsalvageableNames(t *testing.T) {
	guests := []store.Guest{
		{ID: "g1", Name: "!!!***"},
		{ID: "g2", Name: "Keeper"},
	}

	cleaned, needsCleaning := SanitizeGuests(guests)

	assert.True(t, needsCleaning)
	require.Len(t, cleaned, 1)
	assert.Equal(t, "g2", cleaned[0].ID)
}

// TestSanitizeGuests_DropsIncompleteEntries tests that entries missing an id
// or a name are filtered out
func TestSanitizeGuests_DropsIncompleteEntries(t *testing.T) {
	guests := []store.Guest{
		{ID: "", Name: "No ID"},
		{ID: "g1", Name: ""},
		{ID: "g2", Name: "Valid"},
	}

	cleaned, _ := SanitizeGuests(guests)

	require.Len(t, cleaned, 1)
	assert.Equal(t, "g2", cleaned[0].ID)
}

// endregion

// region NormalizeInviteCode tests

// TestNormalizeInviteCode_TrimsAndUppercases tests the normalization of a
// valid code
func TestNormalizeInviteCode_TrimsAndUppercases(t *testing.T) {
	code, err := NormalizeInviteCode("  abc12xyz  ")
	assert.NoError(t, err)
	assert.Equal(t, "ABC12XYZ", code)
}

// TestNormalizeInviteCode_LengthCheck tests rejection of codes that are not
// exactly eight characters after trimming
func TestNormalizeInviteCode_LengthCheck(t *testing.T) {
	_, err := NormalizeInviteCode("abc123")
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "Invite code must be 8 characters", shared.ValidationMessage(err))

	_, err = NormalizeInviteCode("abc123456")
	require.Error(t, err)
}

// TestNormalizeInviteCode_CharsetCheck tests rejection of codes carrying
// anything but letters and digits
func TestNormalizeInviteCode_CharsetCheck(t *testing.T) {
	_, err := NormalizeInviteCode("abc12-yz")
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "Invite code must contain only letters and numbers", shared.ValidationMessage(err))
}

// endregion
