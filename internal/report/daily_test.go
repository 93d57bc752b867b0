// FilePath: internal/report/daily_test.go
package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

func testDailyBuilder() *DailyBuilder {
	conv := testConverter()
	return NewDailyBuilder(conv, NewBucketer(time.UTC), NewMinMaxDelta(conv))
}

func productLogFor(ref models.ProductRef, day, hour int, fields map[models.ReadingField]*float64) models.ProductLog {
	l := logAt(hour, 0, fields)
	l.ProductID = &ref.ID
	l.ProductDeviceID = ref.DeviceID
	l.Date = time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
	return l
}

func TestDailyReportGrouping(t *testing.T) {
	b := testDailyBuilder()

	p1 := models.ProductRef{ID: 1, DeviceID: "regular-device", Name: "RO-1"}
	p2 := models.ProductRef{ID: 2, DeviceID: "second-device", Name: "RO-2"}

	logs := []models.ProductLog{
		productLogFor(p1, 9, 8, map[models.ReadingField]*float64{
			models.FieldProductionVolume: fptr(100),
			models.FieldTds:              fptr(140),
		}),
		productLogFor(p1, 9, 18, map[models.ReadingField]*float64{
			models.FieldProductionVolume: fptr(160),
			models.FieldTds:              fptr(150),
		}),
		productLogFor(p2, 10, 12, map[models.ReadingField]*float64{
			models.FieldRejectedVolume: fptr(30),
		}),
	}

	data := b.Build([]models.ProductRef{p1, p2}, logs)

	require.Len(t, data.Days, 2)
	assert.Equal(t, "2025-06-09", data.Days[0].Dia)
	assert.Equal(t, "2025-06-10", data.Days[1].Dia)

	require.Len(t, data.Days[0].Productos, 1)
	day1 := data.Days[0].Productos[0]
	assert.Equal(t, int64(1), day1.ProductID)
	assert.Equal(t, "RO-1", day1.ProductName)
	assert.Equal(t, 2, day1.TotalLogs)
	require.NotNil(t, day1.Produccion)
	assert.Equal(t, 60.0, day1.Produccion.Value)
	assert.Nil(t, day1.Rechazo)

	require.Len(t, data.Days[1].Productos, 1)
	assert.Equal(t, int64(2), data.Days[1].Productos[0].ProductID)

	assert.Equal(t, 2, data.Summary.TotalDias)
	assert.Equal(t, 3, data.Summary.TotalLogs)
	assert.Equal(t, 2, data.Summary.TotalProductos)
}

func TestDailyReportSnapshots(t *testing.T) {
	b := testDailyBuilder()

	p1 := models.ProductRef{ID: 1, DeviceID: "regular-device", Name: "RO-1"}
	logs := []models.ProductLog{
		productLogFor(p1, 9, 8, map[models.ReadingField]*float64{
			models.FieldTds:             fptr(140),
			models.FieldFlujoProduccion: fptr(80),
		}),
		productLogFor(p1, 9, 20, map[models.ReadingField]*float64{
			models.FieldTds:             fptr(160),
			models.FieldFlujoProduccion: fptr(120),
		}),
	}

	data := b.Build([]models.ProductRef{p1}, logs)
	require.Len(t, data.Days, 1)
	entry := data.Days[0].Productos[0]

	require.NotNil(t, entry.Inicio)
	assert.Equal(t, 140.0, entry.Inicio.Tds)
	assert.InDelta(t, 8.0, entry.Inicio.FlujoProduccion, 1e-9)
	require.NotNil(t, entry.Inicio.Hora)
	assert.Equal(t, 8, entry.Inicio.Hora.Hour())

	require.NotNil(t, entry.Fin)
	assert.Equal(t, 160.0, entry.Fin.Tds)
	assert.InDelta(t, 12.0, entry.Fin.FlujoProduccion, 1e-9)

	// Boundary mean of the converted production flow.
	assert.InDelta(t, 10.0, entry.FlujoProduccionPromedio, 1e-9)
}

func TestDailyReportSnapshotTimestamps(t *testing.T) {
	b := testDailyBuilder()

	p1 := models.ProductRef{ID: 1, DeviceID: "regular-device", Name: "RO-1"}
	logs := []models.ProductLog{
		productLogFor(p1, 9, 9, map[models.ReadingField]*float64{models.FieldTds: fptr(140)}),
		productLogFor(p1, 9, 8, map[models.ReadingField]*float64{models.FieldProductionVolume: fptr(100)}),
		productLogFor(p1, 9, 18, map[models.ReadingField]*float64{models.FieldProductionVolume: fptr(160)}),
		productLogFor(p1, 9, 20, map[models.ReadingField]*float64{models.FieldTds: fptr(150)}),
		productLogFor(p1, 9, 21, map[models.ReadingField]*float64{models.FieldRejectedVolume: fptr(30)}),
	}

	data := b.Build([]models.ProductRef{p1}, logs)

	require.Len(t, data.Days, 1)
	day := data.Days[0].Productos[0]

	// The block timestamp spans all fields: earliest first sample for
	// inicio, latest last sample for fin, regardless of field order.
	require.NotNil(t, day.Inicio)
	require.NotNil(t, day.Inicio.Hora)
	assert.Equal(t, 8, day.Inicio.Hora.Hour())

	require.NotNil(t, day.Fin)
	require.NotNil(t, day.Fin.Hora)
	assert.Equal(t, 21, day.Fin.Hora.Hour())
}

func TestDailyReportHourBreakdown(t *testing.T) {
	b := testDailyBuilder()

	p1 := models.ProductRef{ID: 1, DeviceID: "regular-device", Name: "RO-1"}
	logs := []models.ProductLog{
		productLogFor(p1, 9, 8, map[models.ReadingField]*float64{models.FieldProductionVolume: fptr(100)}),
		productLogFor(p1, 9, 8, map[models.ReadingField]*float64{models.FieldProductionVolume: fptr(130)}),
		productLogFor(p1, 9, 15, map[models.ReadingField]*float64{models.FieldProductionVolume: fptr(170)}),
	}
	logs[1].Date = logs[1].Date.Add(30 * time.Minute)

	data := b.Build([]models.ProductRef{p1}, logs)
	entry := data.Days[0].Productos[0]

	require.Len(t, entry.HoursWithData, 2)
	assert.Equal(t, "08:00", entry.HoursWithData[0].Hora)
	assert.Equal(t, 2, entry.HoursWithData[0].TotalLogs)
	require.NotNil(t, entry.HoursWithData[0].Produccion)
	assert.Equal(t, 30.0, entry.HoursWithData[0].Produccion.Value)

	assert.Equal(t, "15:00", entry.HoursWithData[1].Hora)
	require.NotNil(t, entry.HoursWithData[1].Produccion)
	assert.Equal(t, 0.0, entry.HoursWithData[1].Produccion.Value)
}

func TestDailyReportSkipsUnknownAndFieldlessLogs(t *testing.T) {
	b := testDailyBuilder()

	p1 := models.ProductRef{ID: 1, DeviceID: "regular-device", Name: "RO-1"}
	unknownID := int64(99)
	logs := []models.ProductLog{
		// Unknown product: not part of this punto de venta.
		{ProductID: &unknownID, ProductDeviceID: "stray-device", Tds: fptr(120), Date: time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)},
		// No reportable field present at all.
		productLogFor(p1, 9, 10, nil),
	}

	data := b.Build([]models.ProductRef{p1}, logs)
	assert.Empty(t, data.Days)
	assert.Equal(t, 0, data.Summary.TotalDias)
	assert.Equal(t, 0, data.Summary.TotalLogs)
	assert.Equal(t, 0, data.Summary.TotalProductos)
}

func TestDailyReportCountsPresentButZeroLogs(t *testing.T) {
	b := testDailyBuilder()

	p1 := models.ProductRef{ID: 1, DeviceID: "regular-device", Name: "RO-1"}
	logs := []models.ProductLog{
		productLogFor(p1, 9, 8, map[models.ReadingField]*float64{
			models.FieldProductionVolume: fptr(100),
		}),
		// Present-but-zero row: counts toward the totals even though every
		// aggregate ignores its readings.
		productLogFor(p1, 9, 10, map[models.ReadingField]*float64{
			models.FieldTds: fptr(0),
		}),
	}

	data := b.Build([]models.ProductRef{p1}, logs)

	require.Len(t, data.Days, 1)
	day := data.Days[0].Productos[0]
	assert.Equal(t, 2, day.TotalLogs)
	assert.Equal(t, 2, data.Summary.TotalLogs)

	// The zero row contributes no samples.
	require.NotNil(t, day.Inicio)
	assert.Equal(t, 0.0, day.Inicio.Tds)
}

func TestDailyReportDeviceIDFallback(t *testing.T) {
	b := testDailyBuilder()

	p1 := models.ProductRef{ID: 1, DeviceID: "regular-device", Name: "RO-1"}
	log := models.ProductLog{
		// No numeric product id on the row; matched through the device id.
		ProductDeviceID: "regular-device",
		Tds:             fptr(130),
		Date:            time.Date(2025, 6, 9, 11, 0, 0, 0, time.UTC),
	}

	data := b.Build([]models.ProductRef{p1}, []models.ProductLog{log})
	require.Len(t, data.Days, 1)
	assert.Equal(t, int64(1), data.Days[0].Productos[0].ProductID)
}
