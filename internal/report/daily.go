// FilePath: internal/report/daily.go
package report

import (
	"time"

	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// DailyBuilder assembles the punto de venta range report: one entry per local
// calendar day per product that reported data, with produced/rejected volume
// derived from the cumulative counters. Pure computation over already-fetched
// rows; the caller owns the store round trip.
type DailyBuilder struct {
	conv    *UnitConverter
	buckets *Bucketer
	delta   DeltaStrategy
}

func NewDailyBuilder(conv *UnitConverter, buckets *Bucketer, delta DeltaStrategy) *DailyBuilder {
	return &DailyBuilder{conv: conv, buckets: buckets, delta: delta}
}

// Build groups logs by local day and product. Days or products with no rows
// at all are omitted rather than emitted as empty entries.
func (b *DailyBuilder) Build(products []models.ProductRef, logs []models.ProductLog) models.DailyReportData {
	byID := make(map[int64]models.ProductRef, len(products))
	byDevice := make(map[string]models.ProductRef, len(products))
	for _, p := range products {
		byID[p.ID] = p
		byDevice[p.DeviceID] = p
	}

	type cellKey struct {
		day       string
		productID int64
	}
	cells := make(map[cellKey][]models.ProductLog)
	dayKeys := make(map[string]bool)

	for i := range logs {
		log := &logs[i]
		// Presence check, not a non-zero check: a row whose fields are all
		// sentinel zeroes still counts toward the day's log totals.
		if !log.HasFields() {
			continue
		}
		ref, ok := b.resolveProduct(log, byID, byDevice)
		if !ok {
			continue
		}
		day, _ := b.buckets.Key(log.Date, LocalDay)
		k := cellKey{day: day, productID: ref.ID}
		cells[k] = append(cells[k], *log)
		dayKeys[day] = true
	}

	days := make([]string, 0, len(dayKeys))
	for d := range dayKeys {
		days = append(days, d)
	}
	SortKeys(days)

	data := models.DailyReportData{Days: make([]models.DayEntry, 0, len(days))}
	seenProducts := make(map[int64]bool)

	for _, day := range days {
		entry := models.DayEntry{Dia: day}
		for _, ref := range products {
			cell := cells[cellKey{day: day, productID: ref.ID}]
			if len(cell) == 0 {
				continue
			}
			seenProducts[ref.ID] = true
			entry.Productos = append(entry.Productos, b.buildProductDay(ref, cell))
			data.Summary.TotalLogs += len(cell)
		}
		if len(entry.Productos) > 0 {
			data.Days = append(data.Days, entry)
		}
	}

	data.Summary.TotalDias = len(data.Days)
	data.Summary.TotalProductos = len(seenProducts)
	return data
}

func (b *DailyBuilder) resolveProduct(log *models.ProductLog, byID map[int64]models.ProductRef, byDevice map[string]models.ProductRef) (models.ProductRef, bool) {
	if log.ProductID != nil {
		if ref, ok := byID[*log.ProductID]; ok {
			return ref, true
		}
	}
	ref, ok := byDevice[log.ProductDeviceID]
	return ref, ok
}

func (b *DailyBuilder) buildProductDay(ref models.ProductRef, cell []models.ProductLog) models.DailyProductEntry {
	entry := models.DailyProductEntry{
		ProductID:   ref.ID,
		ProductName: ref.Name,
		TotalLogs:   len(cell),
		Produccion:  b.delta.Delta(cell, models.FieldProductionVolume, ref.DeviceID),
		Rechazo:     b.delta.Delta(cell, models.FieldRejectedVolume, ref.DeviceID),
	}

	entry.Inicio = b.daySnapshot(ref.DeviceID, cell, FirstNonZero, false)
	entry.Fin = b.daySnapshot(ref.DeviceID, cell, LastNonZero, true)
	entry.FlujoProduccionPromedio = b.flowMean(entry.Inicio, entry.Fin)
	entry.HoursWithData = b.buildHourDeltas(ref, cell)
	return entry
}

type snapshotFn func(logs []models.ProductLog, field models.ReadingField) *models.Snapshot

// daySnapshot composes the boundary reading block from the per-field first or
// last sampled values. The block timestamp is the earliest (latest when
// latest is set) field timestamp found, since devices rarely sample every
// field on one tick.
func (b *DailyBuilder) daySnapshot(deviceID string, cell []models.ProductLog, pick snapshotFn, latest bool) *models.DaySnapshot {
	snap := &models.DaySnapshot{}
	var at *time.Time

	set := func(field models.ReadingField, dst *float64) {
		s := pick(cell, field)
		if s == nil {
			return
		}
		*dst = b.conv.ConvertRounded(field, s.Value, deviceID)
		switch {
		case at == nil:
			t := s.Hora
			at = &t
		case latest && s.Hora.After(*at):
			*at = s.Hora
		case !latest && s.Hora.Before(*at):
			*at = s.Hora
		}
	}

	set(models.FieldTds, &snap.Tds)
	set(models.FieldFlujoProduccion, &snap.FlujoProduccion)
	set(models.FieldFlujoRechazo, &snap.FlujoRechazo)
	set(models.FieldProductionVolume, &snap.ProductionVolume)
	set(models.FieldRejectedVolume, &snap.RejectedVolume)

	if at == nil {
		return nil
	}
	snap.Hora = at
	return snap
}

// flowMean averages the boundary production flow readings. Two points is all
// the daily view carries; the hourly report holds the true per-sample mean.
func (b *DailyBuilder) flowMean(inicio, fin *models.DaySnapshot) float64 {
	switch {
	case inicio == nil && fin == nil:
		return 0
	case inicio == nil:
		return fin.FlujoProduccion
	case fin == nil:
		return inicio.FlujoProduccion
	default:
		return Round2((inicio.FlujoProduccion + fin.FlujoProduccion) / 2)
	}
}

// buildHourDeltas re-applies the volume delta per local hour so the daily
// entry can be drilled into without another query.
func (b *DailyBuilder) buildHourDeltas(ref models.ProductRef, cell []models.ProductLog) []models.HourDelta {
	byHour := make(map[string][]models.ProductLog)
	labels := make(map[string]string)
	for i := range cell {
		key, label := b.buckets.Key(cell[i].Date, SingleDayHour)
		byHour[key] = append(byHour[key], cell[i])
		labels[key] = label
	}

	keys := make([]string, 0, len(byHour))
	for k := range byHour {
		keys = append(keys, k)
	}
	SortKeys(keys)

	hours := make([]models.HourDelta, 0, len(keys))
	for _, k := range keys {
		hourLogs := byHour[k]
		hours = append(hours, models.HourDelta{
			Hora:       labels[k],
			TotalLogs:  len(hourLogs),
			Produccion: b.delta.Delta(hourLogs, models.FieldProductionVolume, ref.DeviceID),
			Rechazo:    b.delta.Delta(hourLogs, models.FieldRejectedVolume, ref.DeviceID),
		})
	}
	return hours
}
