package httpadapter

import (
	"context"
	"encoding/base64"
	"log/slog"

	application "mintmymoment/contexts/collectibles-trading/moment-gateway-service/application"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/entities"
	domainerrors "mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/errors"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
	httptransport "mintmymoment/contexts/collectibles-trading/moment-gateway-service/transport/http"
)

// Handler maps HTTP DTOs to gateway operations. The caller principal is
// supplied by the platform layer from the authenticated session.
type Handler struct {
	Gateway application.Service
	Logger  *slog.Logger
}

func (h Handler) ListMomentsHandler(ctx context.Context) (httptransport.ListMomentsResponse, error) {
	moments, err := h.Gateway.ListAll(ctx)
	if err != nil {
		return httptransport.ListMomentsResponse{}, err
	}
	return httptransport.ListMomentsResponse{Moments: toDTOs(moments)}, nil
}

func (h Handler) ListByOwnerHandler(ctx context.Context, owner string) (httptransport.ListMomentsResponse, error) {
	moments, err := h.Gateway.ListByOwner(ctx, owner)
	if err != nil {
		return httptransport.ListMomentsResponse{}, err
	}
	return httptransport.ListMomentsResponse{Moments: toDTOs(moments)}, nil
}

func (h Handler) GetMomentHandler(ctx context.Context, id string) (httptransport.MomentDTO, error) {
	moment, err := h.Gateway.Get(ctx, id)
	if err != nil {
		return httptransport.MomentDTO{}, err
	}
	return toDTO(moment), nil
}

func (h Handler) MintHandler(
	ctx context.Context,
	creator string,
	request httptransport.MintMomentRequest,
) (httptransport.MintMomentResponse, error) {
	media, err := decodeMedia(request.Media)
	if err != nil {
		return httptransport.MintMomentResponse{}, err
	}

	tokenID, err := h.Gateway.Mint(ctx, application.MintRequest{
		Title:       request.Title,
		Description: request.Description,
		Sport:       request.Sport,
		PlayerName:  request.PlayerName,
		EventDate:   request.EventDate,
		Creator:     creator,
		Media:       media,
	})
	if err != nil {
		return httptransport.MintMomentResponse{}, err
	}
	return httptransport.MintMomentResponse{TokenID: tokenID}, nil
}

func (h Handler) BuyHandler(
	ctx context.Context,
	buyer string,
	momentID string,
	request httptransport.BuyMomentRequest,
) (httptransport.OperationResponse, error) {
	err := h.Gateway.Buy(ctx, application.BuyRequest{
		TokenID: momentID,
		Price:   request.Price,
		Buyer:   buyer,
	})
	if err != nil {
		return httptransport.OperationResponse{}, err
	}
	return httptransport.OperationResponse{Status: "purchased"}, nil
}

func (h Handler) TransferHandler(
	ctx context.Context,
	from string,
	momentID string,
	request httptransport.TransferMomentRequest,
) (httptransport.OperationResponse, error) {
	err := h.Gateway.Transfer(ctx, application.TransferRequest{
		TokenID: momentID,
		To:      request.To,
		From:    from,
	})
	if err != nil {
		return httptransport.OperationResponse{}, err
	}
	return httptransport.OperationResponse{Status: "transferred"}, nil
}

func (h Handler) ListReceiptsHandler(ctx context.Context, limit int) (httptransport.ListReceiptsResponse, error) {
	receipts, err := h.Gateway.ListReceipts(ctx, limit)
	if err != nil {
		return httptransport.ListReceiptsResponse{}, err
	}
	dtos := make([]httptransport.ReceiptDTO, 0, len(receipts))
	for _, receipt := range receipts {
		dtos = append(dtos, httptransport.ReceiptDTO{
			ReceiptID:  receipt.ReceiptID,
			Operation:  receipt.Operation,
			Mode:       receipt.Mode,
			Principal:  receipt.Principal,
			TokenID:    receipt.TokenID,
			Price:      receipt.Price,
			OccurredAt: receipt.OccurredAt,
		})
	}
	return httptransport.ListReceiptsResponse{Receipts: dtos}, nil
}

func decodeMedia(dto *httptransport.MediaDTO) (*ports.MediaUpload, error) {
	if dto == nil {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(dto.DataBase64)
	if err != nil {
		return nil, &domainerrors.ValidationError{Field: "media", Reason: "data_base64 is not valid base64"}
	}
	return &ports.MediaUpload{
		Filename:    dto.Filename,
		ContentType: dto.ContentType,
		Data:        data,
	}, nil
}

func toDTO(moment entities.Moment) httptransport.MomentDTO {
	return httptransport.MomentDTO{
		ID:          moment.ID,
		Title:       moment.Title,
		Description: moment.Description,
		Sport:       moment.Sport,
		PlayerName:  moment.PlayerName,
		EventDate:   moment.EventDate,
		MediaURL:    moment.MediaURL,
		Owner:       moment.Owner,
		Creator:     moment.Creator,
		Price:       moment.Price,
		CreatedAt:   moment.CreatedAt,
	}
}

func toDTOs(moments []entities.Moment) []httptransport.MomentDTO {
	dtos := make([]httptransport.MomentDTO, 0, len(moments))
	for _, moment := range moments {
		dtos = append(dtos, toDTO(moment))
	}
	return dtos
}
