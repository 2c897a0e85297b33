package entities

import (
	"strings"
	"time"
)

// Assignment grants a contractor visibility and upload rights on a campaign.
// A (campaign, contractor) pair exists at most once concurrently; the
// repository enforces uniqueness.
type Assignment struct {
	CampaignID   string
	ContractorID string
	AssignedAt   time.Time
	AssignedBy   string
}

func (a Assignment) Validate() bool {
	return strings.TrimSpace(a.CampaignID) != "" &&
		strings.TrimSpace(a.ContractorID) != "" &&
		strings.TrimSpace(a.AssignedBy) != ""
}
