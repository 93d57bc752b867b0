// FilePath: internal/models/api.models.filters.go
package models

import "time"

// LogFilter defines the available log-store filter options. ProductID matches
// either the numeric product id or the hardware device id; WithData restricts
// to rows where at least one reportable field is present (existence, not
// non-zero).
type LogFilter struct {
	ProductID  string
	ProductIDs []string
	DateFrom   *time.Time
	DateTo     *time.Time
	WithData   bool
	Limit      int
}

// ProductLogsQuery is the decoded query string of the product-logs report
// endpoint. Date is a plain YYYY-MM-DD day; StartDate/EndDate accept either a
// day or a full RFC3339 instant for exact ranges.
type ProductLogsQuery struct {
	ProductID    string `schema:"product_id"`
	Date         string `schema:"date"`
	StartDate    string `schema:"start_date"`
	EndDate      string `schema:"end_date"`
	UseLastValue bool   `schema:"use_last_value"`
}

// DailyReportQuery is the decoded query string of the mensual endpoint.
type DailyReportQuery struct {
	PuntoVentaID int64  `schema:"puntoVentaId"`
	DateStart    string `schema:"dateStart"`
	DateEnd      string `schema:"dateEnd"`
}

// TimeSeriesQuery selects database-side bucket aggregates for one field.
type TimeSeriesQuery struct {
	ProductID string `schema:"product_id"`
	Field     string `schema:"field"`
	Start     string `schema:"start"`
	End       string `schema:"end"`
	Interval  string `schema:"interval"`
}

// FieldAggregate is one database-side time_bucket row.
type FieldAggregate struct {
	Bucket time.Time `json:"bucket" db:"bucket"`
	Avg    float64   `json:"avg" db:"avg"`
	Min    float64   `json:"min" db:"min"`
	Max    float64   `json:"max" db:"max"`
	Count  int       `json:"count" db:"count"`
}
