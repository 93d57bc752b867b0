// FilePath: internal/report/hourly_test.go
package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

func testHourlyBuilder() *HourlyBuilder {
	return NewHourlyBuilder(testConverter(), NewBucketer(time.UTC), 2000)
}

func osmosisProduct() *models.Product {
	return &models.Product{ID: 1, DeviceID: "regular-device", Name: "RO-1", ProductType: models.ProductTypeOsmosis}
}

func nivelProduct() *models.Product {
	return &models.Product{ID: 2, DeviceID: "probe-device", Name: "Tank-1", ProductType: models.ProductTypeNivel}
}

func TestHourlyOsmosisSingleDay(t *testing.T) {
	b := testHourlyBuilder()

	logs := []models.ProductLog{
		logAt(10, 5, map[models.ReadingField]*float64{
			models.FieldTds:              fptr(100),
			models.FieldFlujoProduccion:  fptr(85),
			models.FieldProductionVolume: fptr(10),
		}),
		logAt(10, 40, map[models.ReadingField]*float64{
			models.FieldTds:              fptr(200),
			models.FieldProductionVolume: fptr(20),
		}),
		logAt(14, 0, map[models.ReadingField]*float64{
			models.FieldRejectedVolume: fptr(5),
		}),
	}

	hours, total := b.Build(HourlyParams{
		Product:    osmosisProduct(),
		Logs:       logs,
		SingleDay:  true,
		TotalCount: int64(len(logs)),
	})

	assert.Equal(t, 3, total)
	require.Len(t, hours, 2)

	assert.Equal(t, "10:00", hours[0].Hora)
	assert.Equal(t, 2, hours[0].TotalLogs)
	stats, ok := hours[0].Estadisticas.(models.OsmosisStats)
	require.True(t, ok)
	assert.InDelta(t, 150.0, stats.TdsPromedio, 1e-9)
	assert.InDelta(t, 8.5, stats.FlujoProduccionPromedio, 1e-9)
	assert.InDelta(t, 30.0, stats.ProductionVolumeTotal, 1e-9)
	assert.Equal(t, 0.0, stats.RejectedVolumeTotal)

	assert.Equal(t, "14:00", hours[1].Hora)
	stats, ok = hours[1].Estadisticas.(models.OsmosisStats)
	require.True(t, ok)
	assert.InDelta(t, 5.0, stats.RejectedVolumeTotal, 1e-9)
}

func TestHourlySkipsEmptyLogs(t *testing.T) {
	b := testHourlyBuilder()

	logs := []models.ProductLog{
		// All fields zero or absent: does not count toward any bucket.
		logAt(9, 0, map[models.ReadingField]*float64{models.FieldTds: fptr(0)}),
		logAt(10, 0, map[models.ReadingField]*float64{models.FieldTds: fptr(120)}),
	}

	hours, total := b.Build(HourlyParams{Product: osmosisProduct(), Logs: logs, SingleDay: true, TotalCount: 2})

	assert.Equal(t, 1, total)
	require.Len(t, hours, 1)
	assert.Equal(t, "10:00", hours[0].Hora)
}

func TestHourlyMultiDayKeys(t *testing.T) {
	b := testHourlyBuilder()

	logs := []models.ProductLog{
		logAt(23, 30, map[models.ReadingField]*float64{models.FieldTds: fptr(100)}),
	}
	next := logAt(1, 15, map[models.ReadingField]*float64{models.FieldTds: fptr(110)})
	next.Date = next.Date.AddDate(0, 0, 1)
	logs = append(logs, next)

	hours, _ := b.Build(HourlyParams{Product: osmosisProduct(), Logs: logs, SingleDay: false, TotalCount: 2})

	require.Len(t, hours, 2)
	assert.Equal(t, "2025-06-09 23:00", hours[0].Hora)
	assert.Equal(t, "2025-06-10 01:00", hours[1].Hora)
}

// The high-volume path keeps running sums instead of per-log arrays, but it
// must report the same statistics as the detail path for the same input.
func TestHourlyThresholdEquivalence(t *testing.T) {
	b := testHourlyBuilder()
	product := osmosisProduct()

	var logs []models.ProductLog
	for h := 8; h < 12; h++ {
		for m := 0; m < 60; m += 7 {
			logs = append(logs, logAt(h, m, map[models.ReadingField]*float64{
				models.FieldTds:              fptr(float64(100 + h + m)),
				models.FieldFlujoProduccion:  fptr(float64(40 + m)),
				models.FieldProductionVolume: fptr(float64(m + 1)),
				models.FieldRejectedVolume:   fptr(float64(m%5 + 1)),
			}))
		}
	}

	detail, detailTotal := b.Build(HourlyParams{Product: product, Logs: logs, SingleDay: true, TotalCount: 1999})
	agg, aggTotal := b.Build(HourlyParams{Product: product, Logs: logs, SingleDay: true, TotalCount: 2000})

	assert.Equal(t, detailTotal, aggTotal)
	require.Equal(t, len(detail), len(agg))
	for i := range detail {
		assert.Equal(t, detail[i].Hora, agg[i].Hora)
		assert.Equal(t, detail[i].TotalLogs, agg[i].TotalLogs)

		ds := detail[i].Estadisticas.(models.OsmosisStats)
		as := agg[i].Estadisticas.(models.OsmosisStats)
		assert.InDelta(t, ds.TdsPromedio, as.TdsPromedio, 0.01)
		assert.InDelta(t, ds.FlujoProduccionPromedio, as.FlujoProduccionPromedio, 0.01)
		assert.InDelta(t, ds.FlujoRechazoPromedio, as.FlujoRechazoPromedio, 0.01)
		assert.InDelta(t, ds.ProductionVolumeTotal, as.ProductionVolumeTotal, 0.01)
		assert.InDelta(t, ds.RejectedVolumeTotal, as.RejectedVolumeTotal, 0.01)
	}
}

func TestHourlyNivelMeans(t *testing.T) {
	b := testHourlyBuilder()

	logs := []models.ProductLog{
		logAt(9, 0, map[models.ReadingField]*float64{models.FieldFlujoProduccion: fptr(100), models.FieldFlujoRechazo: fptr(40)}),
		logAt(9, 30, map[models.ReadingField]*float64{models.FieldFlujoProduccion: fptr(120), models.FieldFlujoRechazo: fptr(60)}),
	}

	hours, _ := b.Build(HourlyParams{Product: nivelProduct(), Logs: logs, SingleDay: true, TotalCount: 2})

	require.Len(t, hours, 1)
	stats, ok := hours[0].Estadisticas.(models.NivelStats)
	require.True(t, ok)
	// Level probes carry depth/percent in the flow columns; no flow-unit
	// division applies.
	assert.InDelta(t, 110.0, stats.LiquidDepthPromedio, 1e-9)
	assert.InDelta(t, 50.0, stats.LiquidLevelPercentPromedio, 1e-9)
}

func TestHourlyNivelLastValueSingleDay(t *testing.T) {
	b := testHourlyBuilder()

	logs := []models.ProductLog{
		logAt(9, 5, map[models.ReadingField]*float64{models.FieldFlujoProduccion: fptr(120)}),
		logAt(9, 30, map[models.ReadingField]*float64{models.FieldFlujoProduccion: fptr(55)}),
	}

	hours, _ := b.Build(HourlyParams{Product: nivelProduct(), Logs: logs, SingleDay: true, UseLastValue: true, TotalCount: 2})

	require.Len(t, hours, 1)
	stats := hours[0].Estadisticas.(models.NivelStats)
	// Last value, untouched: 55, not 5.5 and not the mean.
	assert.Equal(t, 55.0, stats.LiquidDepthPromedio)
}

func TestHourlyNivelLastValueRange(t *testing.T) {
	b := testHourlyBuilder()

	logs := []models.ProductLog{
		logAt(9, 5, map[models.ReadingField]*float64{models.FieldFlujoProduccion: fptr(120), models.FieldFlujoRechazo: fptr(80)}),
		logAt(9, 40, map[models.ReadingField]*float64{models.FieldFlujoProduccion: fptr(95)}),
	}
	next := logAt(14, 0, map[models.ReadingField]*float64{models.FieldFlujoProduccion: fptr(70)})
	next.Date = next.Date.AddDate(0, 0, 1)
	logs = append(logs, next)

	hours, total := b.Build(HourlyParams{Product: nivelProduct(), Logs: logs, SingleDay: false, UseLastValue: true, TotalCount: 3})

	assert.Equal(t, 3, total)
	require.Len(t, hours, 2)

	assert.Equal(t, "2025-06-09 09:00", hours[0].Hora)
	first := hours[0].Estadisticas.(models.NivelStats)
	// Depth overwritten by the later sample; percent keeps the only sample.
	assert.Equal(t, 95.0, first.LiquidDepthPromedio)
	assert.Equal(t, 80.0, first.LiquidLevelPercentPromedio)

	assert.Equal(t, "2025-06-10 14:00", hours[1].Hora)
	second := hours[1].Estadisticas.(models.NivelStats)
	assert.Equal(t, 70.0, second.LiquidDepthPromedio)
	assert.Equal(t, 0.0, second.LiquidLevelPercentPromedio)
}
