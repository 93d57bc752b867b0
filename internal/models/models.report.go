// FilePath: internal/models/models.report.go
package models

import "time"

// Statistics is the per-bucket statistic block. The key set differs by
// product type, so it is a closed sum: OsmosisStats or NivelStats.
type Statistics interface {
	isStatistics()
}

// OsmosisStats summarizes an hour of continuous flow/TDS telemetry.
type OsmosisStats struct {
	TdsPromedio             float64 `json:"tds_promedio"`
	FlujoProduccionPromedio float64 `json:"flujo_produccion_promedio"`
	FlujoRechazoPromedio    float64 `json:"flujo_rechazo_promedio"`
	ProductionVolumeTotal   float64 `json:"production_volume_total"`
	RejectedVolumeTotal     float64 `json:"rejected_volume_total"`
}

func (OsmosisStats) isStatistics() {}

// NivelStats summarizes an hour of liquid-level telemetry. In last-value
// mode the "_promedio" fields actually carry the most recent sample, not a
// mean; the names are kept because downstream consumers key on them.
type NivelStats struct {
	LiquidDepthPromedio        float64 `json:"liquid_depth_promedio"`
	LiquidLevelPercentPromedio float64 `json:"liquid_level_percent_promedio"`
}

func (NivelStats) isStatistics() {}

// HourStats is one hour bucket of a product-logs report. Buckets are derived
// per request and never persisted.
type HourStats struct {
	Hora         string     `json:"hora"`
	TotalLogs    int        `json:"total_logs"`
	Estadisticas Statistics `json:"estadisticas"`
}

// ProductLogsData is the payload of the single-product hourly report.
type ProductLogsData struct {
	Product       *Product    `json:"product"`
	Date          string      `json:"date,omitempty"`
	StartDate     string      `json:"start_date,omitempty"`
	EndDate       string      `json:"end_date,omitempty"`
	TotalLogs     int         `json:"total_logs"`
	HoursWithData []HourStats `json:"hours_with_data"`
}

// Snapshot is a single point-in-time value with the timestamp it was read at.
type Snapshot struct {
	Value float64   `json:"value"`
	Hora  time.Time `json:"hora"`
}

// VolumeDelta is the produced/rejected volume of a period derived from a
// cumulative device counter: converted min and max readings plus their
// difference.
type VolumeDelta struct {
	Inicio *Snapshot `json:"inicio"`
	Fin    *Snapshot `json:"fin"`
	Value  float64   `json:"value"`
}

// DaySnapshot carries the start-of-day or end-of-day field values for one
// product inside the daily report.
type DaySnapshot struct {
	Tds              float64    `json:"tds"`
	FlujoProduccion  float64    `json:"flujo_produccion"`
	FlujoRechazo     float64    `json:"flujo_rechazo"`
	ProductionVolume float64    `json:"production_volume"`
	RejectedVolume   float64    `json:"rejected_volume"`
	Hora             *time.Time `json:"hora,omitempty"`
}

// HourDelta is the per-hour breakdown entry of the daily report, built with
// the same min/max delta technique scoped to that hour's logs.
type HourDelta struct {
	Hora       string       `json:"hora"`
	TotalLogs  int          `json:"total_logs"`
	Produccion *VolumeDelta `json:"produccion,omitempty"`
	Rechazo    *VolumeDelta `json:"rechazo,omitempty"`
}

// DailyProductEntry is one product's summary inside one calendar day.
type DailyProductEntry struct {
	ProductID               int64        `json:"productId"`
	ProductName             string       `json:"productName"`
	TotalLogs               int          `json:"total_logs"`
	Inicio                  *DaySnapshot `json:"inicio"`
	Fin                     *DaySnapshot `json:"fin"`
	Produccion              *VolumeDelta `json:"produccion"`
	Rechazo                 *VolumeDelta `json:"rechazo"`
	FlujoProduccionPromedio float64      `json:"flujo_produccion_promedio"`
	HoursWithData           []HourDelta  `json:"hours_with_data"`
}

// DayEntry groups the products that reported data on one local calendar day.
type DayEntry struct {
	Dia       string              `json:"dia"`
	Productos []DailyProductEntry `json:"productos"`
}

// DailySummary totals the daily report.
type DailySummary struct {
	TotalDias      int `json:"totalDias"`
	TotalLogs      int `json:"totalLogs"`
	TotalProductos int `json:"totalProductos"`
}

// DailyReportData is the payload of the punto-de-venta range report.
type DailyReportData struct {
	Days    []DayEntry   `json:"data"`
	Summary DailySummary `json:"summary"`
}
