// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Bochorn0/aquatech-api-sub001/internal/database"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	database.Repository
	Create(ctx context.Context, product *models.Product) error
	Get(ctx context.Context, id int64) (*models.Product, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*models.Product, error)
	ListByPuntoVenta(ctx context.Context, puntoVentaID int64) ([]models.ProductRef, error)
	UpdateLastSeen(ctx context.Context, deviceID string, lastSeen time.Time) error
}

// PuntoVentaRepository defines the interface for point-of-sale operations
type PuntoVentaRepository interface {
	database.Repository
	Create(ctx context.Context, punto *models.PuntoVenta) error
	Get(ctx context.Context, id int64) (*models.PuntoVenta, error)
	Update(ctx context.Context, punto *models.PuntoVenta) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*models.PuntoVenta, error)
}

// ClientRepository defines the interface for client operations
type ClientRepository interface {
	database.Repository
	Create(ctx context.Context, client *models.Client) error
	Get(ctx context.Context, id int64) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*models.Client, error)
}

// ProductLogRepository is the log store the reporting engine reads from.
// Logs are append-only; reports never mutate them.
type ProductLogRepository interface {
	database.Repository
	Insert(ctx context.Context, log *models.ProductLog) error
	Find(ctx context.Context, filter models.LogFilter) ([]models.ProductLog, error)
	Count(ctx context.Context, filter models.LogFilter) (int64, error)
	LatestWithData(ctx context.Context, deviceID string) (*models.ProductLog, error)
	FieldAggregates(ctx context.Context, productID string, field models.ReadingField, start, end time.Time, interval string) ([]models.FieldAggregate, error)
	DeleteByProduct(ctx context.Context, productID int64, deviceID string, tx database.Transaction) error
}
