// FilePath: internal/fleetservice/fleetservice.puntoventa.go
package fleetservice

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// CreatePuntoVenta registers a new point of sale.
func (s *FleetService) CreatePuntoVenta(ctx context.Context, punto *models.PuntoVenta) error {
	if punto.Name == "" {
		return errors.NewValidationError("punto de venta name is required", nil)
	}

	now := time.Now()
	punto.CreatedAt = now
	punto.UpdatedAt = now

	nuts.L.Infof("[PuntoVentaService] Creating new punto de venta: %s", punto.Name)
	return s.PuntosVenta.Create(ctx, punto)
}

func (s *FleetService) GetPuntoVenta(ctx context.Context, id int64) (*models.PuntoVenta, error) {
	return s.PuntosVenta.Get(ctx, id)
}

func (s *FleetService) UpdatePuntoVenta(ctx context.Context, punto *models.PuntoVenta) error {
	if _, err := s.PuntosVenta.Get(ctx, punto.ID); err != nil {
		return err
	}
	punto.UpdatedAt = time.Now()
	return s.PuntosVenta.Update(ctx, punto)
}

// DeletePuntoVenta removes a point of sale. Products keep existing and are
// simply detached; their telemetry is untouched.
func (s *FleetService) DeletePuntoVenta(ctx context.Context, id int64) error {
	products, err := s.Products.ListByPuntoVenta(ctx, id)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return errors.NewValidationError("punto de venta still has assigned products", nil)
	}

	nuts.L.Infof("[PuntoVentaService] Deleting punto de venta: %d", id)
	return s.PuntosVenta.Delete(ctx, id)
}

func (s *FleetService) ListPuntosVenta(ctx context.Context, offset, limit int) ([]*models.PuntoVenta, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.PuntosVenta.List(ctx, offset, limit)
}

// ListPuntoVentaProducts returns the slim product references assigned to a
// punto de venta, the same set the daily report runs over.
func (s *FleetService) ListPuntoVentaProducts(ctx context.Context, id int64) ([]models.ProductRef, error) {
	if _, err := s.PuntosVenta.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.Products.ListByPuntoVenta(ctx, id)
}

// CreateClient registers a new client account.
func (s *FleetService) CreateClient(ctx context.Context, client *models.Client) error {
	if client.Name == "" {
		return errors.NewValidationError("client name is required", nil)
	}

	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	nuts.L.Infof("[ClientService] Creating new client: %s", client.Name)
	return s.Clients.Create(ctx, client)
}

func (s *FleetService) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	return s.Clients.Get(ctx, id)
}

func (s *FleetService) UpdateClient(ctx context.Context, client *models.Client) error {
	if _, err := s.Clients.Get(ctx, client.ID); err != nil {
		return err
	}
	client.UpdatedAt = time.Now()
	return s.Clients.Update(ctx, client)
}

func (s *FleetService) DeleteClient(ctx context.Context, id int64) error {
	nuts.L.Infof("[ClientService] Deleting client: %d", id)
	return s.Clients.Delete(ctx, id)
}

func (s *FleetService) ListClients(ctx context.Context, offset, limit int) ([]*models.Client, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Clients.List(ctx, offset, limit)
}
