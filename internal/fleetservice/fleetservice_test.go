// FilePath: internal/fleetservice/fleetservice_test.go
package fleetservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bochorn0/aquatech-api-sub001/internal/config"
	"github.com/Bochorn0/aquatech-api-sub001/internal/database"
	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// ---- fakes ----

type fakeProductRepo struct {
	products map[int64]*models.Product
	refs     map[int64][]models.ProductRef
	lastSeen map[string]time.Time
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[int64]*models.Product),
		refs:     make(map[int64][]models.ProductRef),
		lastSeen: make(map[string]time.Time),
	}
}

func (f *fakeProductRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p *models.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Get(ctx context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, errors.NewNotFoundError("Product not found", nil)
}

func (f *fakeProductRepo) GetByDeviceID(ctx context.Context, deviceID string) (*models.Product, error) {
	for _, p := range f.products {
		if p.DeviceID == deviceID {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("Product not found", nil)
}

func (f *fakeProductRepo) Update(ctx context.Context, p *models.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error          { return nil }

func (f *fakeProductRepo) List(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	out := []*models.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) ListByPuntoVenta(ctx context.Context, id int64) ([]models.ProductRef, error) {
	return f.refs[id], nil
}

func (f *fakeProductRepo) UpdateLastSeen(ctx context.Context, deviceID string, lastSeen time.Time) error {
	f.lastSeen[deviceID] = lastSeen
	return nil
}

type fakePuntoVentaRepo struct {
	puntos map[int64]*models.PuntoVenta
}

func (f *fakePuntoVentaRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}
func (f *fakePuntoVentaRepo) Create(ctx context.Context, p *models.PuntoVenta) error { return nil }

func (f *fakePuntoVentaRepo) Get(ctx context.Context, id int64) (*models.PuntoVenta, error) {
	if p, ok := f.puntos[id]; ok {
		return p, nil
	}
	return nil, errors.NewNotFoundError("Punto de venta not found", nil)
}

func (f *fakePuntoVentaRepo) Update(ctx context.Context, p *models.PuntoVenta) error { return nil }
func (f *fakePuntoVentaRepo) Delete(ctx context.Context, id int64) error             { return nil }
func (f *fakePuntoVentaRepo) List(ctx context.Context, offset, limit int) ([]*models.PuntoVenta, error) {
	return nil, nil
}

type fakeClientRepo struct{}

func (f *fakeClientRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}
func (f *fakeClientRepo) Create(ctx context.Context, c *models.Client) error { return nil }
func (f *fakeClientRepo) Get(ctx context.Context, id int64) (*models.Client, error) {
	return nil, errors.NewNotFoundError("Client not found", nil)
}
func (f *fakeClientRepo) Update(ctx context.Context, c *models.Client) error { return nil }
func (f *fakeClientRepo) Delete(ctx context.Context, id int64) error         { return nil }
func (f *fakeClientRepo) List(ctx context.Context, offset, limit int) ([]*models.Client, error) {
	return nil, nil
}

// fakeLogRepo answers Find/Count from a fixed slice and records whether the
// store was consulted at all.
type fakeLogRepo struct {
	t        *testing.T
	logs     []models.ProductLog
	queried  bool
	inserted []models.ProductLog
}

func (f *fakeLogRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (f *fakeLogRepo) Insert(ctx context.Context, log *models.ProductLog) error {
	f.inserted = append(f.inserted, *log)
	return nil
}

func (f *fakeLogRepo) matches(log *models.ProductLog, filter models.LogFilter) bool {
	if filter.ProductID != "" && log.ProductDeviceID != filter.ProductID {
		return false
	}
	if filter.DateFrom != nil && log.Date.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && log.Date.After(*filter.DateTo) {
		return false
	}
	return true
}

func (f *fakeLogRepo) Find(ctx context.Context, filter models.LogFilter) ([]models.ProductLog, error) {
	f.queried = true
	out := []models.ProductLog{}
	for i := range f.logs {
		if f.matches(&f.logs[i], filter) {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeLogRepo) Count(ctx context.Context, filter models.LogFilter) (int64, error) {
	f.queried = true
	logs, _ := f.Find(ctx, filter)
	return int64(len(logs)), nil
}

func (f *fakeLogRepo) LatestWithData(ctx context.Context, deviceID string) (*models.ProductLog, error) {
	return nil, errors.NewNotFoundError("no log data for device", nil)
}

func (f *fakeLogRepo) FieldAggregates(ctx context.Context, productID string, field models.ReadingField, start, end time.Time, interval string) ([]models.FieldAggregate, error) {
	return nil, nil
}

func (f *fakeLogRepo) DeleteByProduct(ctx context.Context, productID int64, deviceID string, tx database.Transaction) error {
	return nil
}

// ---- helpers ----

func testReportConfig() config.ReportConfig {
	return config.ReportConfig{
		Timezone:         "UTC",
		VolumeThreshold:  2000,
		DefaultRangeDays: 30,
		SpecialDeviceIDs: []string{"eb5741b947793cb5d0ozyb"},
	}
}

func newTestService(t *testing.T, products *fakeProductRepo, puntos *fakePuntoVentaRepo, logs *fakeLogRepo) *FleetService {
	t.Helper()
	svc, err := New(products, puntos, &fakeClientRepo{}, logs, nil, nil, testReportConfig())
	require.NoError(t, err)
	return svc
}

func fv(v float64) *float64 { return &v }

// ---- tests ----

func TestProductLogsReportUnknownProduct(t *testing.T) {
	svc := newTestService(t, newFakeProductRepo(), &fakePuntoVentaRepo{}, &fakeLogRepo{t: t})

	_, err := svc.ProductLogsReport(context.Background(), models.ProductLogsQuery{ProductID: "missing-device"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestProductLogsReportValidation(t *testing.T) {
	svc := newTestService(t, newFakeProductRepo(), &fakePuntoVentaRepo{}, &fakeLogRepo{t: t})

	_, err := svc.ProductLogsReport(context.Background(), models.ProductLogsQuery{})
	assert.True(t, errors.IsValidation(err))

	products := newFakeProductRepo()
	products.products[1] = &models.Product{ID: 1, DeviceID: "dev-1", ProductType: models.ProductTypeOsmosis}
	svc = newTestService(t, products, &fakePuntoVentaRepo{}, &fakeLogRepo{t: t})

	_, err = svc.ProductLogsReport(context.Background(), models.ProductLogsQuery{ProductID: "dev-1", StartDate: "2025-06-01"})
	assert.True(t, errors.IsValidation(err))

	_, err = svc.ProductLogsReport(context.Background(), models.ProductLogsQuery{ProductID: "dev-1", Date: "06/01/2025"})
	assert.True(t, errors.IsValidation(err))
}

func TestProductLogsReportSingleDay(t *testing.T) {
	products := newFakeProductRepo()
	products.products[1] = &models.Product{ID: 1, DeviceID: "dev-1", Name: "RO-1", ProductType: models.ProductTypeOsmosis}

	logs := &fakeLogRepo{t: t, logs: []models.ProductLog{
		{
			ProductDeviceID: "dev-1",
			Tds:             fv(100),
			FlujoProduccion: fv(85),
			Date:            time.Date(2025, 6, 9, 10, 15, 0, 0, time.UTC),
		},
		{
			ProductDeviceID: "dev-1",
			Tds:             fv(200),
			Date:            time.Date(2025, 6, 9, 10, 45, 0, 0, time.UTC),
		},
		// Outside the requested day.
		{
			ProductDeviceID: "dev-1",
			Tds:             fv(999),
			Date:            time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC),
		},
	}}

	svc := newTestService(t, products, &fakePuntoVentaRepo{}, logs)

	data, err := svc.ProductLogsReport(context.Background(), models.ProductLogsQuery{ProductID: "1", Date: "2025-06-09"})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-09", data.Date)
	assert.Equal(t, 2, data.TotalLogs)
	require.Len(t, data.HoursWithData, 1)
	assert.Equal(t, "10:00", data.HoursWithData[0].Hora)

	stats, ok := data.HoursWithData[0].Estadisticas.(models.OsmosisStats)
	require.True(t, ok)
	assert.InDelta(t, 150.0, stats.TdsPromedio, 1e-9)
	assert.InDelta(t, 8.5, stats.FlujoProduccionPromedio, 1e-9)
}

func TestDailyReportEmptyPuntoVentaSkipsStore(t *testing.T) {
	puntos := &fakePuntoVentaRepo{puntos: map[int64]*models.PuntoVenta{
		7: {ID: 7, Name: "Sucursal Centro"},
	}}
	logs := &fakeLogRepo{t: t}

	svc := newTestService(t, newFakeProductRepo(), puntos, logs)

	data, err := svc.DailyReport(context.Background(), models.DailyReportQuery{PuntoVentaID: 7})
	require.NoError(t, err)

	assert.Empty(t, data.Days)
	assert.Equal(t, 0, data.Summary.TotalLogs)
	// A punto de venta with no devices must not touch the log store.
	assert.False(t, logs.queried)
}

func TestDailyReportUnknownPuntoVenta(t *testing.T) {
	svc := newTestService(t, newFakeProductRepo(), &fakePuntoVentaRepo{}, &fakeLogRepo{t: t})

	_, err := svc.DailyReport(context.Background(), models.DailyReportQuery{PuntoVentaID: 99})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDailyReportBadRange(t *testing.T) {
	puntos := &fakePuntoVentaRepo{puntos: map[int64]*models.PuntoVenta{7: {ID: 7}}}
	products := newFakeProductRepo()
	products.refs[7] = []models.ProductRef{{ID: 1, DeviceID: "dev-1", Name: "RO-1"}}

	svc := newTestService(t, products, puntos, &fakeLogRepo{t: t})

	_, err := svc.DailyReport(context.Background(), models.DailyReportQuery{
		PuntoVentaID: 7,
		DateStart:    "2025-06-10",
		DateEnd:      "2025-06-01",
	})
	assert.True(t, errors.IsValidation(err))
}

func TestDailyReportRange(t *testing.T) {
	puntos := &fakePuntoVentaRepo{puntos: map[int64]*models.PuntoVenta{7: {ID: 7}}}
	products := newFakeProductRepo()
	products.refs[7] = []models.ProductRef{{ID: 1, DeviceID: "dev-1", Name: "RO-1"}}

	logs := &fakeLogRepo{t: t, logs: []models.ProductLog{
		{
			ProductDeviceID:  "dev-1",
			ProductionVolume: fv(100),
			Date:             time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC),
		},
		{
			ProductDeviceID:  "dev-1",
			ProductionVolume: fv(160),
			Date:             time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC),
		},
	}}

	svc := newTestService(t, products, puntos, logs)

	data, err := svc.DailyReport(context.Background(), models.DailyReportQuery{
		PuntoVentaID: 7,
		DateStart:    "2025-06-01",
		DateEnd:      "2025-06-30",
	})
	require.NoError(t, err)

	require.Len(t, data.Days, 1)
	assert.Equal(t, "2025-06-09", data.Days[0].Dia)
	require.Len(t, data.Days[0].Productos, 1)
	entry := data.Days[0].Productos[0]
	assert.Equal(t, "RO-1", entry.ProductName)
	require.NotNil(t, entry.Produccion)
	assert.Equal(t, 60.0, entry.Produccion.Value)
}

func TestIngestLogsSkipAndContinue(t *testing.T) {
	products := newFakeProductRepo()
	products.products[1] = &models.Product{ID: 1, DeviceID: "dev-1", ProductType: models.ProductTypeOsmosis}
	logs := &fakeLogRepo{t: t}

	svc := newTestService(t, products, &fakePuntoVentaRepo{}, logs)

	accepted, err := svc.IngestLogs(context.Background(), []models.ProductLog{
		{Tds: fv(100)}, // missing device id
		{ProductDeviceID: "dev-1", Tds: fv(120), Date: time.Now().UTC()},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, accepted)
	require.Len(t, logs.inserted, 1)
	require.NotNil(t, logs.inserted[0].ProductID)
	assert.Equal(t, int64(1), *logs.inserted[0].ProductID)
	// Last-seen bookkeeping ran for the registered device.
	assert.Contains(t, products.lastSeen, "dev-1")
}
