package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/filestore"
	"github.com/vbonduro/stock2profit/internal/receipt"
	"github.com/vbonduro/stock2profit/internal/sales"
)

var ErrNoReceipt = errors.New("receipt not available")

// transactionRepository is the subset of store.TransactionStore that SalesService requires.
type transactionRepository interface {
	Create(ctx context.Context, t domain.Transaction) (*domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	SetReceiptKey(ctx context.Context, id int64, key string) error
}

type SalesService struct {
	transactions transactionRepository
	activity     activityRepository
	receipts     filestore.FileStore
	currency     string
	logger       *slog.Logger
	now          func() time.Time
}

func NewSalesService(
	transactions transactionRepository,
	activity activityRepository,
	receipts filestore.FileStore,
	currency string,
	logger *slog.Logger,
) *SalesService {
	return &SalesService{
		transactions: transactions,
		activity:     activity,
		receipts:     receipts,
		currency:     currency,
		logger:       logger,
		now:          time.Now,
	}
}

// Checkout records a submitted draft as a transaction, adds it to the
// activity feed and stores a PDF receipt for it. Once the transaction is
// committed the sale succeeds: a failed activity entry or receipt is logged.
func (s *SalesService) Checkout(ctx context.Context, userID int64, c sales.Confirmation) (*domain.Transaction, error) {
	if len(c.Items) == 0 {
		return nil, errors.New("nothing to check out")
	}
	s.logger.Info("checkout started", "user_id", userID, "items", len(c.Items), "total", c.Total)

	lines := make([]domain.TransactionLine, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, domain.TransactionLine{
			Product:  it.Product,
			Quantity: it.Quantity,
			Rate:     it.Rate,
			Amount:   it.Amount,
		})
	}

	var createdBy *int64
	if userID > 0 {
		createdBy = &userID
	}

	tx, err := s.transactions.Create(ctx, domain.Transaction{
		Customer:  c.Customer,
		Email:     c.Email,
		Total:     c.Total,
		CreatedBy: createdBy,
		Lines:     lines,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	_, err = s.activity.Create(ctx, domain.Activity{
		Customer:   tx.Customer,
		Product:    activityProduct(c.Items),
		Amount:     tx.Total,
		Status:     domain.ActivityCompleted,
		OccurredOn: s.now().Format(time.DateOnly),
	})
	if err != nil {
		s.logger.Error("failed to record activity", "transaction_id", tx.ID, "error", err)
	}

	if key, err := s.storeReceipt(ctx, tx); err != nil {
		s.logger.Error("failed to store receipt", "transaction_id", tx.ID, "error", err)
	} else {
		tx.ReceiptKey = key
	}

	s.logger.Info("checkout complete", "transaction_id", tx.ID, "customer", tx.Customer)
	return tx, nil
}

func (s *SalesService) storeReceipt(ctx context.Context, tx *domain.Transaction) (string, error) {
	pdf, err := receipt.Render(tx, s.currency)
	if err != nil {
		return "", err
	}

	key, err := s.receipts.Save(ctx, fmt.Sprintf("receipt_%d", tx.ID), receipt.MimeType, bytes.NewReader(pdf))
	if err != nil {
		return "", fmt.Errorf("failed to save receipt: %w", err)
	}

	if err := s.transactions.SetReceiptKey(ctx, tx.ID, key); err != nil {
		if derr := s.receipts.Delete(ctx, key); derr != nil {
			s.logger.Error("failed to remove orphaned receipt", "key", key, "error", derr)
		}
		return "", fmt.Errorf("failed to link receipt: %w", err)
	}
	return key, nil
}

func (s *SalesService) Transaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

// Receipt opens the stored receipt of transaction id. The caller closes the
// returned reader. ErrNoReceipt covers unknown transactions too.
func (s *SalesService) Receipt(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if tx == nil || tx.ReceiptKey == "" {
		return nil, "", ErrNoReceipt
	}

	rc, mime, err := s.receipts.Get(ctx, tx.ReceiptKey)
	if errors.Is(err, filestore.ErrNotFound) {
		return nil, "", ErrNoReceipt
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open receipt: %w", err)
	}
	return rc, mime, nil
}

// activityProduct names a sale in the activity feed by its first line.
func activityProduct(items []sales.LineItem) string {
	if len(items) == 1 {
		return items[0].Product
	}
	return fmt.Sprintf("%s +%d more", items[0].Product, len(items)-1)
}
