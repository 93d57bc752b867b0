// FilePath: internal/fleetservice/fleetservice.product.go
package fleetservice

import (
	"context"
	"time"

	"github.com/itsatony/struccy"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// onlineWindow is how recently a device must have reported to count as online.
const onlineWindow = 5 * time.Minute

// CreateProduct registers a new fleet device.
func (s *FleetService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return errors.NewValidationError("product name is required", nil)
	}
	if product.DeviceID == "" {
		return errors.NewValidationError("device_id is required", nil)
	}
	if product.ProductType == "" {
		product.ProductType = models.ProductTypeOsmosis
	}
	if product.ProductType != models.ProductTypeOsmosis && product.ProductType != models.ProductTypeNivel {
		return errors.NewValidationError("product_type must be Osmosis or Nivel", nil)
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	nuts.L.Infof("[ProductService] Creating new product: %s (%s)", product.Name, product.DeviceID)
	return s.Products.Create(ctx, product)
}

// GetProduct retrieves a product with role-based field filtering.
func (s *FleetService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.resolveProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.filterProduct(ctx, product)
}

// UpdateProduct updates an existing product with role-based access control.
func (s *FleetService) UpdateProduct(ctx context.Context, product *models.Product) error {
	existing, err := s.Products.Get(ctx, product.ID)
	if err != nil {
		return err
	}

	roles := GetUserRoles(ctx)

	updatedFields, _, err := struccy.UpdateStructFields(existing, product, roles, true, true)
	if err != nil {
		return errors.NewAuthorizationError("unauthorized field update", err)
	}

	product.UpdatedAt = time.Now()

	nuts.L.Infof("[ProductService] Updating product %d, fields changed: %v", product.ID, updatedFields)
	return s.Products.Update(ctx, product)
}

// DeleteProduct handles product deletion with cascading telemetry cleanup.
func (s *FleetService) DeleteProduct(ctx context.Context, id int64) error {
	nuts.L.Infof("[ProductService] Deleting product: %d", id)
	return s.Cleanup.DeleteProduct(ctx, id)
}

// ListProducts retrieves a paginated list of products with role-based filtering.
func (s *FleetService) ListProducts(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.Products.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	roles := GetUserRoles(ctx)
	filtered := make([]*models.Product, 0, len(products))
	for _, product := range products {
		f, err := filterProductForRoles(product, roles)
		if err != nil {
			nuts.L.Warnf("[ProductService] Failed to filter product %d: %v", product.ID, err)
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered, nil
}

// GetProductStatus returns the live snapshot for one device: its latest
// reading (cache first, hypertable fallback) rendered as the status array
// the dashboards consume.
func (s *FleetService) GetProductStatus(ctx context.Context, id string) (*models.ProductStatus, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	var lastLog *models.ProductLog
	if s.Latest != nil {
		lastLog, err = s.Latest.GetLatest(ctx, product.DeviceID)
		if err != nil {
			nuts.L.Warnf("[ProductService] Cache read failed for %s: %v", product.DeviceID, err)
		}
	}
	if lastLog == nil {
		lastLog, err = s.Logs.LatestWithData(ctx, product.DeviceID)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
	}

	status := &models.ProductStatus{
		Product:  product,
		LastLog:  lastLog,
		Online:   time.Since(product.LastSeen) < onlineWindow,
		Readings: []models.StatusReading{},
	}
	if lastLog != nil {
		t := lastLog.Date
		status.LastUpdate = &t
		status.Readings = s.statusReadings(product, lastLog)
	}
	return status, nil
}

// statusReading codes and units kept from the legacy dashboards, which key on
// them verbatim.
var osmosisReadings = []struct {
	field models.ReadingField
	code  string
	unit  string
}{
	{models.FieldTds, "tds_out", "ppm"},
	{models.FieldFlujoProduccion, "flowrate_speed_1", "L/min"},
	{models.FieldFlujoRechazo, "flowrate_speed_2", "L/min"},
	{models.FieldProductionVolume, "flowrate_total_1", "L"},
	{models.FieldRejectedVolume, "flowrate_total_2", "L"},
	{models.FieldTemperature, "temperature", "°C"},
}

var nivelReadings = []struct {
	field models.ReadingField
	code  string
	unit  string
}{
	{models.FieldFlujoProduccion, "liquid_depth", "cm"},
	{models.FieldFlujoRechazo, "liquid_level_percent", "%"},
}

func (s *FleetService) statusReadings(product *models.Product, log *models.ProductLog) []models.StatusReading {
	readings := []models.StatusReading{}

	if product.ProductType == models.ProductTypeNivel {
		for _, def := range nivelReadings {
			if v := log.Reading(def.field); v != nil {
				readings = append(readings, models.StatusReading{
					Code:  def.code,
					Value: *v,
					Label: models.SemanticLabel(product.ProductType, def.field),
					Unit:  def.unit,
				})
			}
		}
		return readings
	}

	for _, def := range osmosisReadings {
		if v := log.Reading(def.field); v != nil {
			readings = append(readings, models.StatusReading{
				Code:  def.code,
				Value: s.converter.ConvertRounded(def.field, *v, product.DeviceID),
				Label: models.SemanticLabel(product.ProductType, def.field),
				Unit:  def.unit,
			})
		}
	}
	return readings
}

// UpdateProductLastSeen updates the last seen timestamp for a device.
func (s *FleetService) UpdateProductLastSeen(ctx context.Context, deviceID string) error {
	return s.Products.UpdateLastSeen(ctx, deviceID, time.Now())
}

func (s *FleetService) filterProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	return filterProductForRoles(product, GetUserRoles(ctx))
}

func filterProductForRoles(product *models.Product, roles []string) (*models.Product, error) {
	filteredMap, err := struccy.StructToMapFieldsWithReadXS(product, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter product fields", err)
	}
	filtered := &models.Product{}
	if _, err = struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, roles); err != nil {
		return nil, errors.NewInternalError("failed to map filtered fields to product struct", err)
	}
	return filtered, nil
}
