// FilePath: api/resources/api.resource.reports_test.go
package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bochorn0/aquatech-api-sub001/internal/config"
	"github.com/Bochorn0/aquatech-api-sub001/internal/database"
	"github.com/Bochorn0/aquatech-api-sub001/internal/fleetservice"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
	"github.com/Bochorn0/aquatech-api-sub001/internal/repository"
)

func testService(t *testing.T) *fleetservice.FleetService {
	t.Helper()
	// Repositories stay nil: these tests only exercise paths that fail
	// validation before any repository call.
	svc, err := fleetservice.New(nil, nil, nil, nil, nil, nil, config.ReportConfig{
		Timezone:         "UTC",
		VolumeThreshold:  2000,
		DefaultRangeDays: 30,
	})
	require.NoError(t, err)
	return svc
}

type errorBody struct {
	Success bool   `json:"success"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func TestProductLogsRequiresProductID(t *testing.T) {
	h := &ReportHandlers{service: testService(t)}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/product-logs", nil)
	rr := httptest.NewRecorder()

	h.ProductLogs(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "validation", body.Type)
}

func TestDailyRequiresPuntoVentaID(t *testing.T) {
	h := &ReportHandlers{service: testService(t)}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/mensual", nil)
	rr := httptest.NewRecorder()

	h.Daily(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "validation", body.Type)
}

// stubPuntoVentaRepo serves a single punto de venta so the daily report can
// reach its success path without a database.
type stubPuntoVentaRepo struct{}

func (s *stubPuntoVentaRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}
func (s *stubPuntoVentaRepo) Create(ctx context.Context, p *models.PuntoVenta) error { return nil }
func (s *stubPuntoVentaRepo) Get(ctx context.Context, id int64) (*models.PuntoVenta, error) {
	return &models.PuntoVenta{ID: id, Name: "Sucursal Centro"}, nil
}
func (s *stubPuntoVentaRepo) Update(ctx context.Context, p *models.PuntoVenta) error { return nil }
func (s *stubPuntoVentaRepo) Delete(ctx context.Context, id int64) error             { return nil }
func (s *stubPuntoVentaRepo) List(ctx context.Context, offset, limit int) ([]*models.PuntoVenta, error) {
	return nil, nil
}

// stubProductRepo has no products assigned to any punto de venta.
type stubProductRepo struct{}

func (s *stubProductRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}
func (s *stubProductRepo) Create(ctx context.Context, p *models.Product) error { return nil }
func (s *stubProductRepo) Get(ctx context.Context, id int64) (*models.Product, error) {
	return nil, repository.ErrNotFound
}
func (s *stubProductRepo) GetByDeviceID(ctx context.Context, deviceID string) (*models.Product, error) {
	return nil, repository.ErrNotFound
}
func (s *stubProductRepo) Update(ctx context.Context, p *models.Product) error { return nil }
func (s *stubProductRepo) Delete(ctx context.Context, id int64) error          { return nil }
func (s *stubProductRepo) List(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) ListByPuntoVenta(ctx context.Context, puntoVentaID int64) ([]models.ProductRef, error) {
	return nil, nil
}
func (s *stubProductRepo) UpdateLastSeen(ctx context.Context, deviceID string, lastSeen time.Time) error {
	return nil
}

// The mensual payload keeps data and summary as top-level siblings of
// success and message; dashboards parse exactly this shape.
func TestDailyWireShape(t *testing.T) {
	svc, err := fleetservice.New(&stubProductRepo{}, &stubPuntoVentaRepo{}, nil, nil, nil, nil, config.ReportConfig{
		Timezone:         "UTC",
		VolumeThreshold:  2000,
		DefaultRangeDays: 30,
	})
	require.NoError(t, err)
	h := &ReportHandlers{service: svc}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/mensual?puntoVentaId=7", nil)
	rr := httptest.NewRecorder()

	h.Daily(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Contains(t, body, "success")
	require.Contains(t, body, "message")
	require.Contains(t, body, "data")
	require.Contains(t, body, "summary")

	var days []models.DayEntry
	require.NoError(t, json.Unmarshal(body["data"], &days))
	assert.Empty(t, days)

	var summary models.DailySummary
	require.NoError(t, json.Unmarshal(body["summary"], &summary))
	assert.Equal(t, 0, summary.TotalDias)
	assert.Equal(t, 0, summary.TotalLogs)
}

func TestTimeSeriesRejectsBadQuery(t *testing.T) {
	h := &ReportHandlers{service: testService(t)}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/timeseries?field=tds", nil)
	rr := httptest.NewRecorder()

	h.TimeSeries(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEnvelopeShape(t *testing.T) {
	rr := httptest.NewRecorder()
	respondWithData(rr, http.StatusOK, map[string]int{"n": 1})

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data["n"])
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}
