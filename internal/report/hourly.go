// FilePath: internal/report/hourly.go
package report

import (
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// HourlyParams carries one product's logs and the shape of the requested
// window. TotalCount is the store-side count for the same window; it drives
// the memory-bounded branch for high-volume Osmosis periods.
type HourlyParams struct {
	Product      *models.Product
	Logs         []models.ProductLog
	SingleDay    bool
	UseLastValue bool
	TotalCount   int64
}

// HourlyBuilder groups a product's logs into local-time hour buckets and
// computes per-bucket statistics. The computation is request-scoped and pure;
// buckets are never persisted.
type HourlyBuilder struct {
	conv      *UnitConverter
	buckets   *Bucketer
	threshold int64
}

func NewHourlyBuilder(conv *UnitConverter, buckets *Bucketer, threshold int64) *HourlyBuilder {
	return &HourlyBuilder{conv: conv, buckets: buckets, threshold: threshold}
}

// Build returns the ordered hour statistics and the number of logs that
// contributed (logs with no sampled field are not counted).
func (b *HourlyBuilder) Build(p HourlyParams) ([]models.HourStats, int) {
	switch {
	case p.Product.ProductType == models.ProductTypeNivel && p.UseLastValue && !p.SingleDay:
		return b.buildNivelLastValueRange(p)
	case p.Product.ProductType == models.ProductTypeOsmosis && p.TotalCount >= b.threshold:
		return b.buildOsmosisAggregated(p)
	default:
		return b.buildGeneral(p)
	}
}

type sample struct {
	value float64
	hora  string
	ts    int64 // unix nanos; invalid timestamps collapse to equal rank
}

type hourAccum struct {
	label     string
	totalLogs int
	samples   map[models.ReadingField][]sample
}

func newHourAccum(label string) *hourAccum {
	return &hourAccum{label: label, samples: make(map[models.ReadingField][]sample)}
}

// buildGeneral is the detail path: per-hour value lists for every field, then
// statistics per bucket. Single-day mode pre-seeds all 24 hours so ordering
// and presence are stable; empty ones are filtered out after grouping.
func (b *HourlyBuilder) buildGeneral(p HourlyParams) ([]models.HourStats, int) {
	mode := MultiDayHour
	if p.SingleDay {
		mode = SingleDayHour
	}

	buckets := make(map[string]*hourAccum)
	if p.SingleDay {
		for _, h := range b.buckets.SeedHours() {
			buckets[h] = newHourAccum(h + ":00")
		}
	}

	for i := range p.Logs {
		log := &p.Logs[i]
		if !log.HasData() {
			continue
		}
		key, label := b.buckets.Key(log.Date, mode)
		acc, ok := buckets[key]
		if !ok {
			acc = newHourAccum(label)
			buckets[key] = acc
		}
		acc.totalLogs++
		for _, field := range models.ReportableFields {
			if v := log.Reading(field); v != nil {
				acc.samples[field] = append(acc.samples[field], sample{
					value: *v,
					hora:  label,
					ts:    log.Date.UnixNano(),
				})
			}
		}
	}

	keys := make([]string, 0, len(buckets))
	for k, acc := range buckets {
		if acc.totalLogs > 0 {
			keys = append(keys, k)
		}
	}
	SortKeys(keys)

	hours := make([]models.HourStats, 0, len(keys))
	total := 0
	for _, k := range keys {
		acc := buckets[k]
		total += acc.totalLogs
		hours = append(hours, models.HourStats{
			Hora:         acc.label,
			TotalLogs:    acc.totalLogs,
			Estadisticas: b.statsFor(p, acc),
		})
	}
	return hours, total
}

func (b *HourlyBuilder) statsFor(p HourlyParams, acc *hourAccum) models.Statistics {
	deviceID := p.Product.DeviceID
	if p.Product.ProductType == models.ProductTypeNivel {
		if p.UseLastValue {
			return models.NivelStats{
				LiquidDepthPromedio:        Round2(lastSampleValue(acc.samples[models.FieldFlujoProduccion])),
				LiquidLevelPercentPromedio: Round2(lastSampleValue(acc.samples[models.FieldFlujoRechazo])),
			}
		}
		// Level probes transport depth/percent in the flow columns; the flow
		// unit correction does not apply to them.
		return models.NivelStats{
			LiquidDepthPromedio:        Round2(meanRaw(acc.samples[models.FieldFlujoProduccion])),
			LiquidLevelPercentPromedio: Round2(meanRaw(acc.samples[models.FieldFlujoRechazo])),
		}
	}

	return models.OsmosisStats{
		TdsPromedio:             Round2(b.meanConverted(acc.samples[models.FieldTds], models.FieldTds, deviceID)),
		FlujoProduccionPromedio: Round2(b.meanConverted(acc.samples[models.FieldFlujoProduccion], models.FieldFlujoProduccion, deviceID)),
		FlujoRechazoPromedio:    Round2(b.meanConverted(acc.samples[models.FieldFlujoRechazo], models.FieldFlujoRechazo, deviceID)),
		ProductionVolumeTotal:   Round2(b.sumConverted(acc.samples[models.FieldProductionVolume], models.FieldProductionVolume, deviceID)),
		RejectedVolumeTotal:     Round2(b.sumConverted(acc.samples[models.FieldRejectedVolume], models.FieldRejectedVolume, deviceID)),
	}
}

func (b *HourlyBuilder) meanConverted(samples []sample, field models.ReadingField, deviceID string) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += b.conv.Convert(field, s.value, deviceID)
	}
	return sum / float64(len(samples))
}

func (b *HourlyBuilder) sumConverted(samples []sample, field models.ReadingField, deviceID string) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += b.conv.Convert(field, s.value, deviceID)
	}
	return sum
}

func meanRaw(samples []sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s.value
	}
	return sum / float64(len(samples))
}

// lastSampleValue picks the most recent sample by timestamp. Equal or invalid
// timestamps rank the same, so the later sample in original order wins.
func lastSampleValue(samples []sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	best := samples[0]
	for _, s := range samples[1:] {
		if s.ts >= best.ts {
			best = s
		}
	}
	return best.value
}

type nivelLastAccum struct {
	label     string
	totalLogs int
	depth     *float64
	percent   *float64
}

// buildNivelLastValueRange handles level probes over a date range when the
// caller asked for last-value semantics (point-of-sale detail charts). Each
// bucket keeps only a running last-seen value per field, so memory stays O(1)
// per bucket no matter how many logs land in it. The output fields keep their
// legacy "_promedio" names even though they carry last values here.
func (b *HourlyBuilder) buildNivelLastValueRange(p HourlyParams) ([]models.HourStats, int) {
	buckets := make(map[string]*nivelLastAccum)

	for i := range p.Logs {
		log := &p.Logs[i]
		if !log.HasData() {
			continue
		}
		key, label := b.buckets.Key(log.Date, MultiDayHour)
		acc, ok := buckets[key]
		if !ok {
			acc = &nivelLastAccum{label: label}
			buckets[key] = acc
		}
		acc.totalLogs++
		if v := log.Reading(models.FieldFlujoProduccion); v != nil {
			acc.depth = v
		}
		if v := log.Reading(models.FieldFlujoRechazo); v != nil {
			acc.percent = v
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	SortKeys(keys)

	hours := make([]models.HourStats, 0, len(keys))
	total := 0
	for _, k := range keys {
		acc := buckets[k]
		total += acc.totalLogs
		stats := models.NivelStats{}
		if acc.depth != nil {
			stats.LiquidDepthPromedio = Round2(*acc.depth)
		}
		if acc.percent != nil {
			stats.LiquidLevelPercentPromedio = Round2(*acc.percent)
		}
		hours = append(hours, models.HourStats{
			Hora:         acc.label,
			TotalLogs:    acc.totalLogs,
			Estadisticas: stats,
		})
	}
	return hours, total
}

type osmosisAccum struct {
	label     string
	totalLogs int

	sumTds float64
	nTds   int
	sumFP  float64
	nFP    int
	sumFR  float64
	nFR    int
	sumPV  float64
	sumRV  float64
}

// buildOsmosisAggregated is the memory-bounded path for high-volume periods.
// It produces the same per-hour statistics as the general path but keeps only
// running sums and counts per bucket instead of full per-log detail arrays,
// so the transient footprint stays flat however many logs the period holds.
func (b *HourlyBuilder) buildOsmosisAggregated(p HourlyParams) ([]models.HourStats, int) {
	mode := MultiDayHour
	if p.SingleDay {
		mode = SingleDayHour
	}
	deviceID := p.Product.DeviceID

	buckets := make(map[string]*osmosisAccum)
	for i := range p.Logs {
		log := &p.Logs[i]
		if !log.HasData() {
			continue
		}
		key, label := b.buckets.Key(log.Date, mode)
		acc, ok := buckets[key]
		if !ok {
			acc = &osmosisAccum{label: label}
			buckets[key] = acc
		}
		acc.totalLogs++
		if v := log.Reading(models.FieldTds); v != nil {
			acc.sumTds += b.conv.Convert(models.FieldTds, *v, deviceID)
			acc.nTds++
		}
		if v := log.Reading(models.FieldFlujoProduccion); v != nil {
			acc.sumFP += b.conv.Convert(models.FieldFlujoProduccion, *v, deviceID)
			acc.nFP++
		}
		if v := log.Reading(models.FieldFlujoRechazo); v != nil {
			acc.sumFR += b.conv.Convert(models.FieldFlujoRechazo, *v, deviceID)
			acc.nFR++
		}
		if v := log.Reading(models.FieldProductionVolume); v != nil {
			acc.sumPV += b.conv.Convert(models.FieldProductionVolume, *v, deviceID)
		}
		if v := log.Reading(models.FieldRejectedVolume); v != nil {
			acc.sumRV += b.conv.Convert(models.FieldRejectedVolume, *v, deviceID)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	SortKeys(keys)

	hours := make([]models.HourStats, 0, len(keys))
	total := 0
	for _, k := range keys {
		acc := buckets[k]
		total += acc.totalLogs
		stats := models.OsmosisStats{
			ProductionVolumeTotal: Round2(acc.sumPV),
			RejectedVolumeTotal:   Round2(acc.sumRV),
		}
		if acc.nTds > 0 {
			stats.TdsPromedio = Round2(acc.sumTds / float64(acc.nTds))
		}
		if acc.nFP > 0 {
			stats.FlujoProduccionPromedio = Round2(acc.sumFP / float64(acc.nFP))
		}
		if acc.nFR > 0 {
			stats.FlujoRechazoPromedio = Round2(acc.sumFR / float64(acc.nFR))
		}
		hours = append(hours, models.HourStats{
			Hora:         acc.label,
			TotalLogs:    acc.totalLogs,
			Estadisticas: stats,
		})
	}
	return hours, total
}
