package store

import (
	"context"
	"errors"
	"time"
)

// Errors returned by store implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("menu item name already exists")
	ErrAlreadyFinal  = errors.New("order is already completed or canceled")
)

// Order is one persisted line item. Every row written by a single checkout
// shares the same SubmissionID, Table, Notes, and CreatedAt.
type Order struct {
	ID           string    `bson:"_id" json:"id"`
	SubmissionID string    `bson:"submission_id,omitempty" json:"submission_id,omitempty"`
	Table        string    `bson:"table" json:"table"`
	Name         string    `bson:"name" json:"name"`
	Qty          int       `bson:"qty" json:"qty"`
	Price        float64   `bson:"price" json:"price"`
	Status       string    `bson:"status" json:"status"`
	Notes        string    `bson:"notes,omitempty" json:"notes"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// MenuItem is a catalog entry. Names are unique case-insensitively.
type MenuItem struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string  `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Category    string  `bson:"category" json:"category"`
}

// Store is the persistence capability behind the API. Two implementations
// exist: MongoStore (durable) and MemoryStore (ephemeral). The backend is
// chosen once at startup and never switched mid-process.
type Store interface {
	// Backend names the active implementation, e.g. "mongo" or "memory".
	Backend() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	ListMenu(ctx context.Context) ([]MenuItem, error)
	CreateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error)
	UpdateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error

	// InsertOrders persists all rows of one checkout.
	InsertOrders(ctx context.Context, orders []Order) error
	// ListPendingOrders returns pending rows oldest-created-first.
	ListPendingOrders(ctx context.Context) ([]Order, error)
	// ListFinishedOrders returns completed/canceled rows newest-updated-first.
	ListFinishedOrders(ctx context.Context) ([]Order, error)
	// ListAllOrders returns every row newest-created-first.
	ListAllOrders(ctx context.Context) ([]Order, error)
	// UpdateOrderStatus moves a pending order to a terminal status. It fails
	// with ErrNotFound for an unknown id and ErrAlreadyFinal when the order
	// has already left the pending state.
	UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) (Order, error)
}
