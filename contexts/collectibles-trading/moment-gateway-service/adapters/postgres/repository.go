package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"

	"gorm.io/gorm"
)

// Repository persists trade receipts in PostgreSQL.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate creates the receipt table when missing.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&receiptModel{})
}

func (r *Repository) CreateReceipt(ctx context.Context, receipt ports.Receipt) error {
	row := receiptModel{
		ReceiptID:  receipt.ReceiptID,
		Operation:  receipt.Operation,
		Mode:       receipt.Mode,
		Principal:  receipt.Principal,
		TokenID:    receipt.TokenID,
		Price:      receipt.Price,
		OccurredAt: receipt.OccurredAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]ports.Receipt, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []receiptModel
	if err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	receipts := make([]ports.Receipt, 0, len(rows))
	for _, row := range rows {
		receipts = append(receipts, row.toPort())
	}
	return receipts, nil
}

type receiptModel struct {
	ReceiptID  string    `gorm:"column:receipt_id;primaryKey"`
	Operation  string    `gorm:"column:operation"`
	Mode       string    `gorm:"column:mode"`
	Principal  string    `gorm:"column:principal"`
	TokenID    string    `gorm:"column:token_id"`
	Price      string    `gorm:"column:price"`
	OccurredAt time.Time `gorm:"column:occurred_at;index"`
}

func (receiptModel) TableName() string { return "trade_receipts" }

func (m receiptModel) toPort() ports.Receipt {
	return ports.Receipt{
		ReceiptID:  m.ReceiptID,
		Operation:  m.Operation,
		Mode:       m.Mode,
		Principal:  m.Principal,
		TokenID:    m.TokenID,
		Price:      m.Price,
		OccurredAt: m.OccurredAt,
	}
}
