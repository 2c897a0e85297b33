package errors

import (
	"errors"
	"fmt"
)

var ErrPermissionDenied = errors.New("permission denied")

// Denied wraps ErrPermissionDenied with the attempted action and, when
// known, the resource id, so transport can report what was refused without
// the core carrying presentation text.
func Denied(action string, resourceID string) error {
	if resourceID == "" {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, action)
	}
	return fmt.Errorf("%w: %s on %s", ErrPermissionDenied, action, resourceID)
}
