package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"time"

	"fieldproof/contexts/campaign-workflow/image-service/application/commands"
	"fieldproof/contexts/campaign-workflow/image-service/application/queries"
	"fieldproof/contexts/campaign-workflow/image-service/domain/entities"
	httptransport "fieldproof/contexts/campaign-workflow/image-service/transport/http"
	identity "fieldproof/contexts/identity-access/access-policy/domain/entities"
)

type Handler struct {
	UploadImage          commands.UploadImageUseCase
	ReviewImage          commands.ReviewImageUseCase
	DeleteImage          commands.DeleteImageUseCase
	ListImages           queries.ListImagesUseCase
	ListImagesByUploader queries.ListImagesByUploaderUseCase
	GetImage             queries.GetImageUseCase
	Logger               *slog.Logger
}

// UploadImageHandler receives the multipart part already opened by the
// server layer; Content streams the file body.
func (h Handler) UploadImageHandler(ctx context.Context, p identity.Principal, campaignID, fileName, contentType string, sizeBytes int64, content io.Reader) (httptransport.UploadImageResponse, error) {
	img, err := h.UploadImage.Execute(ctx, commands.UploadImageCommand{
		Principal:   p,
		CampaignID:  campaignID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		Content:     content,
	})
	if err != nil {
		return httptransport.UploadImageResponse{}, err
	}
	return httptransport.UploadImageResponse{Image: mapImage(img)}, nil
}

func (h Handler) ApproveImageHandler(ctx context.Context, p identity.Principal, imageID string) (httptransport.ReviewImageResponse, error) {
	img, err := h.ReviewImage.Approve(ctx, commands.ReviewImageCommand{Principal: p, ImageID: imageID})
	if err != nil {
		return httptransport.ReviewImageResponse{}, err
	}
	return httptransport.ReviewImageResponse{Image: mapImage(img)}, nil
}

func (h Handler) RejectImageHandler(ctx context.Context, p identity.Principal, imageID string, req httptransport.ReviewImageRequest) (httptransport.ReviewImageResponse, error) {
	img, err := h.ReviewImage.Reject(ctx, commands.ReviewImageCommand{Principal: p, ImageID: imageID, Reason: req.Reason})
	if err != nil {
		return httptransport.ReviewImageResponse{}, err
	}
	return httptransport.ReviewImageResponse{Image: mapImage(img)}, nil
}

func (h Handler) DeleteImageHandler(ctx context.Context, p identity.Principal, imageID string) (httptransport.DeleteImageResponse, error) {
	if err := h.DeleteImage.Execute(ctx, commands.DeleteImageCommand{Principal: p, ImageID: imageID}); err != nil {
		return httptransport.DeleteImageResponse{}, err
	}
	return httptransport.DeleteImageResponse{Deleted: true}, nil
}

func (h Handler) ListImagesHandler(ctx context.Context, p identity.Principal, campaignID string, query queries.ListImagesQuery) (httptransport.ListImagesResponse, error) {
	items, err := h.ListImages.Execute(ctx, p, campaignID, query)
	if err != nil {
		return httptransport.ListImagesResponse{}, err
	}
	result := make([]httptransport.ImageDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapImage(item))
	}
	return httptransport.ListImagesResponse{Items: result}, nil
}

func (h Handler) ListImagesByUploaderHandler(ctx context.Context, p identity.Principal, uploaderID string) (httptransport.ListImagesResponse, error) {
	items, err := h.ListImagesByUploader.Execute(ctx, p, uploaderID)
	if err != nil {
		return httptransport.ListImagesResponse{}, err
	}
	result := make([]httptransport.ImageDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapImage(item))
	}
	return httptransport.ListImagesResponse{Items: result}, nil
}

func (h Handler) GetImageHandler(ctx context.Context, p identity.Principal, imageID string) (httptransport.GetImageResponse, error) {
	img, err := h.GetImage.Execute(ctx, p, imageID)
	if err != nil {
		return httptransport.GetImageResponse{}, err
	}
	return httptransport.GetImageResponse{Image: mapImage(img)}, nil
}

func mapImage(item entities.Image) httptransport.ImageDTO {
	result := httptransport.ImageDTO{
		ImageID:         item.ImageID,
		CampaignID:      item.CampaignID,
		UploaderID:      item.UploaderID,
		FileName:        item.FileName,
		ContentType:     item.ContentType,
		SizeBytes:       item.SizeBytes,
		Status:          string(item.Status),
		RejectionReason: item.RejectionReason,
		UploadedAt:      item.UploadedAt.Format(time.RFC3339),
	}
	if item.ReviewedBy != nil {
		result.ReviewedBy = *item.ReviewedBy
	}
	if item.ReviewedAt != nil {
		result.ReviewedAt = item.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return result
}
