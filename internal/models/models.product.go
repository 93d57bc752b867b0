// FilePath: internal/models/models.product.go
package models

import "time"

type ProductType string

const (
	ProductTypeOsmosis ProductType = "Osmosis"
	ProductTypeNivel   ProductType = "Nivel"
)

// Product is a fleet device (reverse-osmosis purifier or liquid-level probe).
// DeviceID is the stable hardware identifier; it doubles as the key for the
// per-device unit-conversion allow-list.
type Product struct {
	ID           int64       `json:"id" db:"id"`
	DeviceID     string      `json:"device_id" db:"device_id"`
	Name         string      `json:"name" db:"name"`
	ProductType  ProductType `json:"product_type" db:"product_type"`
	Model        string      `json:"model" db:"model"`
	City         string      `json:"city" db:"city"`
	Drive        string      `json:"drive" db:"drive"`
	Lat          string      `json:"lat" db:"lat"`
	Lon          string      `json:"lon" db:"lon"`
	Online       bool        `json:"online" db:"online"`
	PuntoVentaID *int64      `json:"punto_venta_id,omitempty" db:"punto_venta_id"`
	ClientID     *int64      `json:"client_id,omitempty" db:"client_id"`
	LocalKey     string      `json:"local_key,omitempty" db:"local_key" readxs:"system,superadmin" writexs:"system,superadmin"`
	LastSeen     time.Time   `json:"last_seen" db:"last_seen"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// ProductRef is the slim product reference a punto de venta owns.
type ProductRef struct {
	ID       int64  `json:"id" db:"id"`
	DeviceID string `json:"device_id" db:"device_id"`
	Name     string `json:"name" db:"name"`
}

// ProductStatus is the live snapshot served from the latest-reading cache.
type ProductStatus struct {
	Product    *Product        `json:"product"`
	LastLog    *ProductLog     `json:"last_log,omitempty"`
	Readings   []StatusReading `json:"readings"`
	Online     bool            `json:"online"`
	LastUpdate *time.Time      `json:"last_update,omitempty"`
}

// StatusReading mirrors the legacy status array entries the dashboards expect.
type StatusReading struct {
	Code  string  `json:"code"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Unit  string  `json:"unit"`
}
