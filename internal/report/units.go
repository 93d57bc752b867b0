// FilePath: internal/report/units.go
package report

import (
	"math"

	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// speedFields are instantaneous flow-rate readings; totalFields are the
// cumulative volume counters. Other fields (tds, temperature) pass through
// unconverted.
var speedFields = map[models.ReadingField]bool{
	models.FieldFlujoProduccion: true,
	models.FieldFlujoRechazo:    true,
}

var totalFields = map[models.ReadingField]bool{
	models.FieldProductionVolume: true,
	models.FieldRejectedVolume:   true,
}

// UnitConverter applies per-device correction factors to raw flow and volume
// readings. A fixed allow-list of devices ships hardware with a different
// calibration and needs a 1.6 multiplier before the standard speed-to-L/s
// division. Pure computation, no I/O.
type UnitConverter struct {
	special map[string]struct{}
}

func NewUnitConverter(specialDeviceIDs []string) *UnitConverter {
	special := make(map[string]struct{}, len(specialDeviceIDs))
	for _, id := range specialDeviceIDs {
		special[id] = struct{}{}
	}
	return &UnitConverter{special: special}
}

// Convert corrects a raw reading for one device. Zero is the "not sampled"
// sentinel and is returned unchanged.
func (c *UnitConverter) Convert(field models.ReadingField, raw float64, deviceID string) float64 {
	if raw == 0 {
		return raw
	}

	_, special := c.special[deviceID]
	switch {
	case totalFields[field]:
		if special {
			raw = raw * 1.6 / 10
		}
	case speedFields[field]:
		if special {
			raw *= 1.6
		}
		if raw > 0 {
			raw /= 10
		}
	}
	return raw
}

// ConvertRounded is Convert plus 2-decimal rounding for presentation paths.
// Aggregation paths defer rounding to the final statistic.
func (c *UnitConverter) ConvertRounded(field models.ReadingField, raw float64, deviceID string) float64 {
	return Round2(c.Convert(field, raw, deviceID))
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
