// FilePath: internal/report/aggregate.go
package report

import (
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// DeltaStrategy derives a period volume from a cumulative device counter.
// The seam exists so a rollover-aware algorithm can replace the default
// without touching callers.
type DeltaStrategy interface {
	Delta(logs []models.ProductLog, field models.ReadingField, deviceID string) *models.VolumeDelta
}

// MinMaxDelta computes the delta as converted(max) - converted(min) over the
// period. Min/max by value, not first/last by time: devices report sparsely
// and occasionally out of order, and a counter reset near a boundary hurts a
// last-minus-first reading far more. Genuine hardware counter rollover is NOT
// corrected; a wrapped counter understates the period.
type MinMaxDelta struct {
	conv *UnitConverter
}

func NewMinMaxDelta(conv *UnitConverter) *MinMaxDelta {
	return &MinMaxDelta{conv: conv}
}

// Delta returns nil when no log in the period carries the field, so callers
// can distinguish "no data" from "zero change".
func (d *MinMaxDelta) Delta(logs []models.ProductLog, field models.ReadingField, deviceID string) *models.VolumeDelta {
	var min, max *models.Snapshot

	for i := range logs {
		v := logs[i].Reading(field)
		if v == nil {
			continue
		}
		if min == nil || *v < min.Value {
			min = &models.Snapshot{Value: *v, Hora: logs[i].Date}
		}
		if max == nil || *v > max.Value {
			max = &models.Snapshot{Value: *v, Hora: logs[i].Date}
		}
	}

	if min == nil {
		return nil
	}

	inicio := &models.Snapshot{
		Value: d.conv.ConvertRounded(field, min.Value, deviceID),
		Hora:  min.Hora,
	}
	fin := &models.Snapshot{
		Value: d.conv.ConvertRounded(field, max.Value, deviceID),
		Hora:  max.Hora,
	}
	return &models.VolumeDelta{
		Inicio: inicio,
		Fin:    fin,
		Value:  Round2(d.conv.Convert(field, max.Value, deviceID) - d.conv.Convert(field, min.Value, deviceID)),
	}
}

// FirstNonZero scans logs in timestamp order and returns the first sampled
// value of a point-in-time field, or nil when the field never appears.
func FirstNonZero(logs []models.ProductLog, field models.ReadingField) *models.Snapshot {
	var best *models.Snapshot
	for i := range logs {
		v := logs[i].Reading(field)
		if v == nil {
			continue
		}
		if best == nil || logs[i].Date.Before(best.Hora) {
			best = &models.Snapshot{Value: *v, Hora: logs[i].Date}
		}
	}
	return best
}

// LastNonZero is the end-of-period counterpart of FirstNonZero.
func LastNonZero(logs []models.ProductLog, field models.ReadingField) *models.Snapshot {
	var best *models.Snapshot
	for i := range logs {
		v := logs[i].Reading(field)
		if v == nil {
			continue
		}
		if best == nil || !logs[i].Date.Before(best.Hora) {
			best = &models.Snapshot{Value: *v, Hora: logs[i].Date}
		}
	}
	return best
}
