/* errors_test.go
 * Contains unit tests for errors.go functions
 */

package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationf_WrapsSentinel(t *testing.T) {
	err := Validationf("Missing required field: %s", "groupId")

	assert.True(t, IsValidation(err))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Missing required field: groupId", ValidationMessage(err))
}

func TestIsValidation_OtherErrors(t *testing.T) {
	assert.False(t, IsValidation(errors.New("connection reset")))
	assert.False(t, IsValidation(nil))
}

// TestIsValidation_WrappedDeeper tests detection through further wrapping
func TestIsValidation_WrappedDeeper(t *testing.T) {
	err := fmt.Errorf("handling request: %w", Validationf("bad input"))
	assert.True(t, IsValidation(err))
}

func TestValidationMessage_NonValidation(t *testing.T) {
	err := errors.New("database unavailable")
	assert.Equal(t, "database unavailable", ValidationMessage(err))
	assert.Equal(t, "", ValidationMessage(nil))
}
