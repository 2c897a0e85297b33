package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ImageDTO struct {
	ImageID         string `json:"image_id"`
	CampaignID      string `json:"campaign_id"`
	UploaderID      string `json:"uploader_id"`
	FileName        string `json:"file_name"`
	ContentType     string `json:"content_type"`
	SizeBytes       int64  `json:"size_bytes"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	ReviewedBy      string `json:"reviewed_by,omitempty"`
	ReviewedAt      string `json:"reviewed_at,omitempty"`
	UploadedAt      string `json:"uploaded_at"`
}

type UploadImageResponse struct {
	Image ImageDTO `json:"image"`
}

type ReviewImageRequest struct {
	Reason string `json:"reason"`
}

type ReviewImageResponse struct {
	Image ImageDTO `json:"image"`
}

type DeleteImageResponse struct {
	Deleted bool `json:"deleted"`
}

type ListImagesResponse struct {
	Items []ImageDTO `json:"items"`
}

type GetImageResponse struct {
	Image ImageDTO `json:"image"`
}
