package queries

import (
	"context"
	"log/slog"
	"strings"

	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
	policyerrors "fieldproof/contexts/identity-access/access-policy/domain/errors"
	policy "fieldproof/contexts/identity-access/access-policy/domain/services"
	"fieldproof/contexts/reporting/reporting-service/ports"
)

// ContractorApprovalRate reports the share of a contractor's reviewed images
// that were approved. Pending images do not count against the rate; a
// contractor with nothing reviewed yet has a zero rate.
type ContractorApprovalRate struct {
	ContractorID   string  `json:"contractor_id"`
	TotalImages    int     `json:"total_images"`
	ReviewedImages int     `json:"reviewed_images"`
	ApprovedImages int     `json:"approved_images"`
	ApprovalRate   float64 `json:"approval_rate"`
}

type ContractorApprovalRateUseCase struct {
	Images ports.ImageSource
	Logger *slog.Logger
}

// Execute computes the rate. Employees query anyone; a contractor only
// themself.
func (uc ContractorApprovalRateUseCase) Execute(ctx context.Context, p identity.Principal, contractorID string) (ContractorApprovalRate, error) {
	contractorID = strings.TrimSpace(contractorID)
	if !policy.CanViewStatistics(p) && !(p.Role == identity.RoleContractor && p.ID == contractorID) {
		return ContractorApprovalRate{}, policyerrors.Denied("report.contractor_approval", contractorID)
	}

	counts, err := uc.Images.CountUploaderImages(ctx, contractorID)
	if err != nil {
		return ContractorApprovalRate{}, err
	}

	rate := ContractorApprovalRate{
		ContractorID:   contractorID,
		TotalImages:    counts.Total,
		ReviewedImages: counts.Approved + counts.Rejected,
		ApprovedImages: counts.Approved,
	}
	if rate.ReviewedImages > 0 {
		rate.ApprovalRate = float64(counts.Approved) / float64(rate.ReviewedImages) * 100
	}
	return rate, nil
}
