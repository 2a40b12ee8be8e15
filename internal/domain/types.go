package domain

import "time"

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type InventoryItem struct {
	ID        int64     `yaml:"-"`
	SKU       string    `yaml:"sku"`
	Name      string    `yaml:"name"`
	Category  string    `yaml:"category"`
	Stock     int       `yaml:"stock"`
	Price     float64   `yaml:"price"`
	CreatedAt time.Time `yaml:"-"`
}

// LowStock reports whether the item has fallen under threshold units.
func (i *InventoryItem) LowStock(threshold int) bool {
	return i.Stock < threshold
}

type ActivityStatus string

const (
	ActivityCompleted ActivityStatus = "Completed"
	ActivityPending   ActivityStatus = "Pending"
	ActivityCanceled  ActivityStatus = "Canceled"
)

// Activity is one entry of the recent sales feed.
type Activity struct {
	ID         int64          `yaml:"-"`
	Customer   string         `yaml:"customer"`
	Product    string         `yaml:"product"`
	Amount     float64        `yaml:"amount"`
	Status     ActivityStatus `yaml:"status"`
	OccurredOn string         `yaml:"date"` // YYYY-MM-DD
	CreatedAt  time.Time      `yaml:"-"`
}

type AlertKind string

const (
	AlertWarning AlertKind = "warning"
	AlertError   AlertKind = "error"
	AlertInfo    AlertKind = "info"
)

type Alert struct {
	ID          int64     `yaml:"-"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Kind        AlertKind `yaml:"type"`
	RaisedAt    time.Time `yaml:"-"`
}

// Transaction is a processed sale as persisted after checkout.
type Transaction struct {
	ID         int64
	Customer   string
	Email      string
	Total      float64
	ReceiptKey string
	CreatedBy  *int64
	CreatedAt  time.Time
	Lines      []TransactionLine
}

type TransactionLine struct {
	Position int
	Product  string
	Quantity int
	Rate     float64
	Amount   float64
}
