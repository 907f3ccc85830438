package httptransport

import "time"

// MomentDTO is the HTTP view of one token.
type MomentDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sport       string    `json:"sport"`
	PlayerName  string    `json:"player_name"`
	EventDate   string    `json:"event_date"`
	MediaURL    string    `json:"media_url"`
	Owner       string    `json:"owner"`
	Creator     string    `json:"creator"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListMomentsResponse struct {
	Moments []MomentDTO `json:"moments"`
}

// MediaDTO carries optional base64 mint media.
type MediaDTO struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	DataBase64  string `json:"data_base64"`
}

type MintMomentRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sport       string    `json:"sport"`
	PlayerName  string    `json:"player_name"`
	EventDate   string    `json:"event_date"`
	Media       *MediaDTO `json:"media,omitempty"`
}

type MintMomentResponse struct {
	TokenID string `json:"token_id"`
}

type BuyMomentRequest struct {
	Price string `json:"price"`
}

type TransferMomentRequest struct {
	To string `json:"to"`
}

type OperationResponse struct {
	Status string `json:"status"`
}

type ReceiptDTO struct {
	ReceiptID  string    `json:"receipt_id"`
	Operation  string    `json:"operation"`
	Mode       string    `json:"mode"`
	Principal  string    `json:"principal"`
	TokenID    string    `json:"token_id"`
	Price      string    `json:"price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ListReceiptsResponse struct {
	Receipts []ReceiptDTO `json:"receipts"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
