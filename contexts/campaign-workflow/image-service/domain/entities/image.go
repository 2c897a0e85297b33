package entities

import (
	"strings"
	"time"
)

// ImageStatus is the moderation state of an uploaded image. Review is a
// single pass: pending moves to approved or rejected exactly once, and both
// outcomes are terminal.
type ImageStatus string

const (
	ImageStatusPending  ImageStatus = "pending"
	ImageStatusApproved ImageStatus = "approved"
	ImageStatusRejected ImageStatus = "rejected"
)

func (s ImageStatus) Valid() bool {
	switch s {
	case ImageStatusPending, ImageStatusApproved, ImageStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the image has been reviewed.
func (s ImageStatus) Terminal() bool {
	return s == ImageStatusApproved || s == ImageStatusRejected
}

// Image is a piece of photo evidence attached to a campaign. RejectionReason
// is set only when Status is rejected; ReviewedBy and ReviewedAt are set
// exactly when Status left pending.
type Image struct {
	ImageID         string
	CampaignID      string
	UploaderID      string
	FileName        string
	ContentType     string
	SizeBytes       int64
	StorageKey      string
	Status          ImageStatus
	RejectionReason string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	UploadedAt      time.Time
	UpdatedAt       time.Time
}

const maxFileNameLength = 255

// ValidateUpload checks the metadata an upload must carry before the blob is
// accepted. Content validation (size and type limits) belongs to the file
// store, which sees the actual bytes.
func (img Image) ValidateUpload() bool {
	if strings.TrimSpace(img.CampaignID) == "" || strings.TrimSpace(img.UploaderID) == "" {
		return false
	}
	name := strings.TrimSpace(img.FileName)
	if name == "" || len(name) > maxFileNameLength {
		return false
	}
	return true
}

// Pending reports whether the image still awaits review.
func (img Image) Pending() bool {
	return img.Status == ImageStatusPending
}
