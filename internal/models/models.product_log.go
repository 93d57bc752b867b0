// FilePath: internal/models/models.product_log.go
package models

import "time"

// ReadingField names one of the numeric slots a device can populate on a log.
type ReadingField string

const (
	FieldTds              ReadingField = "tds"
	FieldProductionVolume ReadingField = "production_volume"
	FieldRejectedVolume   ReadingField = "rejected_volume"
	FieldTemperature      ReadingField = "temperature"
	FieldFlujoProduccion  ReadingField = "flujo_produccion"
	FieldFlujoRechazo     ReadingField = "flujo_rechazo"
)

// ReportableFields lists every slot the reporting engine looks at.
var ReportableFields = []ReadingField{
	FieldTds,
	FieldProductionVolume,
	FieldRejectedVolume,
	FieldTemperature,
	FieldFlujoProduccion,
	FieldFlujoRechazo,
}

// ProductLog is a single raw telemetry record as the devices emit it.
// Every numeric slot is optional; a missing value OR an exact zero both mean
// "the device did not sample this field on this tick". Zero is never a valid
// reading.
type ProductLog struct {
	ID               int64     `json:"id" db:"id"`
	ProductID        *int64    `json:"product_id,omitempty" db:"product_id"`
	ProductDeviceID  string    `json:"product_device_id" db:"product_device_id"`
	Tds              *float64  `json:"tds,omitempty" db:"tds"`
	ProductionVolume *float64  `json:"production_volume,omitempty" db:"production_volume"`
	RejectedVolume   *float64  `json:"rejected_volume,omitempty" db:"rejected_volume"`
	Temperature      *float64  `json:"temperature,omitempty" db:"temperature"`
	FlujoProduccion  *float64  `json:"flujo_produccion,omitempty" db:"flujo_produccion"`
	FlujoRechazo     *float64  `json:"flujo_rechazo,omitempty" db:"flujo_rechazo"`
	Source           string    `json:"source" db:"source"`
	Date             time.Time `json:"date" db:"date"`
}

func (l *ProductLog) slot(field ReadingField) *float64 {
	switch field {
	case FieldTds:
		return l.Tds
	case FieldProductionVolume:
		return l.ProductionVolume
	case FieldRejectedVolume:
		return l.RejectedVolume
	case FieldTemperature:
		return l.Temperature
	case FieldFlujoProduccion:
		return l.FlujoProduccion
	case FieldFlujoRechazo:
		return l.FlujoRechazo
	}
	return nil
}

// Reading returns the sampled value for a field, or nil when the field is
// absent or carries the zero sentinel.
func (l *ProductLog) Reading(field ReadingField) *float64 {
	v := l.slot(field)
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

// HasFields reports whether at least one reportable slot is present at all,
// zero-valued included. This is the row-level mirror of the store's existence
// filter: such rows count toward log totals even though every aggregate
// ignores their zero readings.
func (l *ProductLog) HasFields() bool {
	for _, f := range ReportableFields {
		if l.slot(f) != nil {
			return true
		}
	}
	return false
}

// HasData reports whether at least one reportable field carries a sample.
func (l *ProductLog) HasData() bool {
	for _, f := range ReportableFields {
		if l.Reading(f) != nil {
			return true
		}
	}
	return false
}

// SemanticLabel resolves the business name of a slot for a product type.
// Nivel devices reuse the two flow-rate columns to transport liquid depth
// and liquid level percent, so the label depends on the product type.
func SemanticLabel(pt ProductType, field ReadingField) string {
	if pt == ProductTypeNivel {
		switch field {
		case FieldFlujoProduccion:
			return "liquid_depth"
		case FieldFlujoRechazo:
			return "liquid_level_percent"
		}
	}
	return string(field)
}
