package services

import (
	"time"

	"fieldproof/contexts/identity-access/access-policy/domain/entities"
)

// Every decision switches exhaustively over the closed role set and denies
// by default, so an unknown role can never fall through to an allow.

func CanCreateCampaign(p entities.Principal) bool {
	switch p.Role {
	case entities.RoleCompanyEmployee:
		return p.Valid()
	case entities.RoleClient, entities.RoleContractor:
		return false
	default:
		return false
	}
}

func CanMutateCampaign(p entities.Principal) bool {
	return CanCreateCampaign(p)
}

func CanTransitionCampaign(p entities.Principal) bool {
	return CanCreateCampaign(p)
}

func CanManageAssignments(p entities.Principal) bool {
	return CanCreateCampaign(p)
}

// CanReadCampaign decides campaign visibility. assigned reports whether the
// principal holds a contractor assignment on the campaign.
func CanReadCampaign(p entities.Principal, campaignCompanyID string, assigned bool) bool {
	if !p.Valid() {
		return false
	}
	switch p.Role {
	case entities.RoleCompanyEmployee:
		return true
	case entities.RoleClient:
		return p.CompanyID == campaignCompanyID
	case entities.RoleContractor:
		return assigned
	default:
		return false
	}
}

func CanUploadImage(p entities.Principal, assigned bool) bool {
	if !p.Valid() {
		return false
	}
	switch p.Role {
	case entities.RoleCompanyEmployee:
		return true
	case entities.RoleContractor:
		return assigned
	case entities.RoleClient:
		return false
	default:
		return false
	}
}

func CanReviewImage(p entities.Principal) bool {
	return CanCreateCampaign(p)
}

// CanDeleteImage: employees delete anything; an uploader may delete their
// own image only while it is still pending.
func CanDeleteImage(p entities.Principal, uploaderID string, pending bool) bool {
	if !p.Valid() {
		return false
	}
	switch p.Role {
	case entities.RoleCompanyEmployee:
		return true
	case entities.RoleContractor:
		return pending && p.ID == uploaderID
	case entities.RoleClient:
		return false
	default:
		return false
	}
}

func CanViewStatistics(p entities.Principal) bool {
	return CanCreateCampaign(p)
}

// ClientCompletedCutoff returns the oldest recency marker a client may still
// see on a completed campaign. Completed campaigns whose marker falls before
// the cutoff are invisible to clients regardless of caller-supplied filters.
func ClientCompletedCutoff(now time.Time) time.Time {
	return now.UTC().AddDate(0, -1, 0)
}

// ClientCompletedCampaignVisible applies the cutoff to a single campaign.
// The start date is the recency marker; completion time stands in when the
// campaign never recorded one.
func ClientCompletedCampaignVisible(startDate, completedAt *time.Time, now time.Time) bool {
	marker := startDate
	if marker == nil {
		marker = completedAt
	}
	if marker == nil {
		return false
	}
	return marker.UTC().After(ClientCompletedCutoff(now))
}
