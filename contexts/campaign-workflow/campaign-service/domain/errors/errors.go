package errors

import (
	"errors"
	"fmt"
)

var (
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrInvalidCampaignInput = errors.New("invalid campaign input")
	ErrInvalidTransition    = errors.New("invalid campaign status transition")
	ErrInvalidState         = errors.New("operation not allowed in current campaign state")
	ErrAssignmentConflict   = errors.New("contractor already assigned to campaign")
)

// InvalidTransition carries the rejected edge alongside the sentinel so
// errors.Is keeps working at the transport boundary.
func InvalidTransition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// InvalidState names the state that blocked the operation.
func InvalidState(operation, status string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidState, operation, status)
}
