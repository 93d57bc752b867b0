// FilePath: internal/repository/postgres/postgres.puntoventa.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/Bochorn0/aquatech-api-sub001/internal/database"
	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

type PuntoVentaRepo struct {
	PostgresBaseRepo
}

func NewPuntoVentaRepository(db database.DB) *PuntoVentaRepo {
	repo := &PostgresBaseRepo{db: db}
	return &PuntoVentaRepo{PostgresBaseRepo: *repo}
}

func (r *PuntoVentaRepo) Create(ctx context.Context, punto *models.PuntoVenta) error {
	query := `
		INSERT INTO puntos_venta (name, code, address, client_id, created_at, updated_at)
		VALUES (:name, :code, :address, :client_id, :created_at, :updated_at)
		RETURNING id`

	rows, err := r.db.GetDB().NamedQueryContext(ctx, query, punto)
	if err != nil {
		return errors.NewDatabaseError("failed to create punto de venta", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&punto.ID); err != nil {
			return errors.NewDatabaseError("failed to read punto de venta id", err)
		}
	}
	return nil
}

func (r *PuntoVentaRepo) Get(ctx context.Context, id int64) (*models.PuntoVenta, error) {
	punto := &models.PuntoVenta{}
	query := `SELECT * FROM puntos_venta WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, punto, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("Punto de venta not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get punto de venta", err)
	}
	return punto, nil
}

func (r *PuntoVentaRepo) Update(ctx context.Context, punto *models.PuntoVenta) error {
	query := `
		UPDATE puntos_venta SET
			name = :name,
			code = :code,
			address = :address,
			client_id = :client_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, punto)
	if err != nil {
		return errors.NewDatabaseError("failed to update punto de venta", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("Punto de venta not found", nil)
	}

	return nil
}

func (r *PuntoVentaRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM puntos_venta WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete punto de venta", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("Punto de venta not found", nil)
	}

	return nil
}

func (r *PuntoVentaRepo) List(ctx context.Context, offset, limit int) ([]*models.PuntoVenta, error) {
	puntos := []*models.PuntoVenta{}
	query := `SELECT * FROM puntos_venta ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	err := r.db.GetDB().SelectContext(ctx, &puntos, query, offset, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list puntos de venta", err)
	}

	return puntos, nil
}
