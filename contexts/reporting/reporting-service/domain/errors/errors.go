package errors

import "errors"

var (
	// ErrCampaignNotFound covers progress requests for unknown campaigns.
	ErrCampaignNotFound = errors.New("campaign not found")
)
