// FilePath: internal/repository/postgres/postgres.product.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Bochorn0/aquatech-api-sub001/internal/database"
	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

type ProductRepo struct {
	PostgresBaseRepo
}

func NewProductRepository(db database.DB) *ProductRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ProductRepo{PostgresBaseRepo: *repo}
}

func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (
			device_id, name, product_type, model, city, drive,
			lat, lon, online, punto_venta_id, client_id, local_key,
			last_seen, created_at, updated_at
		) VALUES (
			:device_id, :name, :product_type, :model, :city, :drive,
			:lat, :lon, :online, :punto_venta_id, :client_id, :local_key,
			:last_seen, :created_at, :updated_at
		) RETURNING id`

	rows, err := r.db.GetDB().NamedQueryContext(ctx, query, product)
	if err != nil {
		return errors.NewDatabaseError("failed to create product", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&product.ID); err != nil {
			return errors.NewDatabaseError("failed to read product id", err)
		}
	}
	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT * FROM products WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, product, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("Product not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get product", err)
	}
	return product, nil
}

// GetByDeviceID resolves a product by its hardware identifier. Report
// endpoints accept either the numeric id or the device id, so both lookups
// exist.
func (r *ProductRepo) GetByDeviceID(ctx context.Context, deviceID string) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT * FROM products WHERE device_id = $1`

	err := r.db.GetDB().GetContext(ctx, product, query, deviceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("Product not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get product", err)
	}
	return product, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products SET
			name = :name,
			product_type = :product_type,
			model = :model,
			city = :city,
			drive = :drive,
			lat = :lat,
			lon = :lon,
			online = :online,
			punto_venta_id = :punto_venta_id,
			client_id = :client_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, product)
	if err != nil {
		return errors.NewDatabaseError("failed to update product", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("Product not found", nil)
	}

	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete product", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("Product not found", nil)
	}

	return nil
}

func (r *ProductRepo) List(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	products := []*models.Product{}
	query := `SELECT * FROM products ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	err := r.db.GetDB().SelectContext(ctx, &products, query, offset, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list products", err)
	}

	return products, nil
}

func (r *ProductRepo) ListByPuntoVenta(ctx context.Context, puntoVentaID int64) ([]models.ProductRef, error) {
	refs := []models.ProductRef{}
	query := `SELECT id, device_id, name FROM products WHERE punto_venta_id = $1 ORDER BY id`

	err := r.db.GetDB().SelectContext(ctx, &refs, query, puntoVentaID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list punto de venta products", err)
	}

	return refs, nil
}

func (r *ProductRepo) UpdateLastSeen(ctx context.Context, deviceID string, lastSeen time.Time) error {
	query := `
		UPDATE products SET
			last_seen = $1,
			online = TRUE,
			updated_at = $1
		WHERE device_id = $2`

	_, err := r.db.GetDB().ExecContext(ctx, query, lastSeen, deviceID)
	if err != nil {
		return errors.NewDatabaseError("failed to update last seen", err)
	}
	return nil
}
