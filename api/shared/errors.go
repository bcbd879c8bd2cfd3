/* errors.go
 * Error kinds surfaced by the callable operations. Validation errors carry a
 * caller-facing message and map to an invalid-argument response; everything
 * else is treated as internal and only a generic message leaves the server.
 */

package shared

import (
	"errors"
	"fmt"
)

// ErrValidation marks caller-correctable failures: missing fields, unknown
// entities, unauthorized actors, malformed input.
var ErrValidation = errors.New("invalid argument")

// Validationf builds a validation error with a descriptive, user-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is (or wraps) a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ValidationMessage strips the sentinel prefix so only the descriptive part is
// shown to the caller. Non-validation errors are returned unchanged.
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
