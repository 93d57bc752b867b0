// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"fmt"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/internal/cache"
	"github.com/Bochorn0/aquatech-api-sub001/internal/repository"
)

// CleanupService coordinates deletion of a product and everything hanging off
// it: hypertable telemetry, the cached latest reading, and finally the product
// row itself.
type CleanupService struct {
	products repository.ProductRepository
	logs     repository.ProductLogRepository
	latest   *cache.LatestReadingCache
	events   *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	products repository.ProductRepository,
	logs repository.ProductLogRepository,
	latest *cache.LatestReadingCache,
) *CleanupService {
	return &CleanupService{
		products: products,
		logs:     logs,
		latest:   latest,
		events:   nuts.NewEventEmitter(),
	}
}

// DeleteProduct deletes a product and all its associated telemetry. Telemetry
// removal runs in its own transaction on the telemetry database; the product
// row lives in the app database and is deleted last, so a crash in between
// leaves an empty but consistent product rather than orphaned logs.
func (s *CleanupService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.logs.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	if err := s.logs.DeleteByProduct(ctx, product.ID, product.DeviceID, tx); err != nil {
		return fmt.Errorf("failed to delete product logs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.events.Emit("logs.deleted", product.DeviceID)

	if s.latest != nil {
		if err := s.latest.Invalidate(ctx, product.DeviceID); err != nil {
			nuts.L.Warnf("[Cleanup] Failed to drop cached reading for %s: %v", product.DeviceID, err)
		}
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.events.Emit("product.deleted", fmt.Sprintf("%d", id))
	nuts.L.Infof("[Cleanup] Deleted product %d (%s) and its telemetry", id, product.DeviceID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
