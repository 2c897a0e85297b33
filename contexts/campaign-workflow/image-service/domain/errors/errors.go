package errors

import "errors"

var (
	// ErrImageNotFound covers lookups for images that do not exist.
	ErrImageNotFound = errors.New("image not found")

	// ErrCampaignNotFound covers uploads and listings against campaigns the
	// campaign reader does not know.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrInvalidImageInput covers malformed upload metadata and a rejection
	// without a reason.
	ErrInvalidImageInput = errors.New("invalid image input")

	// ErrInvalidState marks a review attempted on an image that already left
	// pending. Review is single-pass; there is no re-review.
	ErrInvalidState = errors.New("invalid image state")

	// ErrFileRejected marks an upload whose content the file store refused,
	// by size or content type.
	ErrFileRejected = errors.New("file rejected")
)
