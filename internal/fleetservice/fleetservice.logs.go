// FilePath: internal/fleetservice/fleetservice.logs.go
package fleetservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// IngestLogs stores a batch of raw telemetry. Devices buffer and retry, so a
// bad record must never sink the rest of the batch: invalid or failing rows
// are logged and skipped, and the accepted count is returned.
func (s *FleetService) IngestLogs(ctx context.Context, logs []models.ProductLog) (int, error) {
	accepted := 0
	for i := range logs {
		log := &logs[i]
		if err := s.ingestOne(ctx, log); err != nil {
			nuts.L.Warnf("[IngestService] Skipping log for %q: %v", log.ProductDeviceID, err)
			if s.Metrics != nil {
				s.Metrics.ObserveIngestion(err)
			}
			continue
		}
		if s.Metrics != nil {
			s.Metrics.ObserveIngestion(nil)
		}
		accepted++
	}

	nuts.L.Infof("[IngestService] Ingested %d/%d logs", accepted, len(logs))
	return accepted, nil
}

func (s *FleetService) ingestOne(ctx context.Context, log *models.ProductLog) error {
	if log.ProductDeviceID == "" {
		return errors.NewValidationError("product_device_id is required", nil)
	}

	// Attach the numeric product id when the device is registered. Unknown
	// devices still get stored; registration can lag provisioning.
	if log.ProductID == nil {
		product, err := s.Products.GetByDeviceID(ctx, log.ProductDeviceID)
		switch {
		case err == nil:
			log.ProductID = &product.ID
		case !errors.IsNotFound(err):
			return err
		}
	}

	if err := s.Logs.Insert(ctx, log); err != nil {
		return err
	}

	// Post-insert bookkeeping is best effort; the row is already durable.
	if s.Latest != nil && log.HasData() {
		if err := s.Latest.SetLatest(ctx, log.ProductDeviceID, log); err != nil {
			nuts.L.Warnf("[IngestService] Failed to cache latest reading for %s: %v", log.ProductDeviceID, err)
		}
	}
	if log.ProductID != nil {
		if err := s.UpdateProductLastSeen(ctx, log.ProductDeviceID); err != nil {
			nuts.L.Warnf("[IngestService] Failed to update last seen for %s: %v", log.ProductDeviceID, err)
		}
	}
	return nil
}
