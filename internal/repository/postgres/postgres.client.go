// FilePath: internal/repository/postgres/postgres.client.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/Bochorn0/aquatech-api-sub001/internal/database"
	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

type ClientRepo struct {
	PostgresBaseRepo
}

func NewClientRepository(db database.DB) *ClientRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ClientRepo{PostgresBaseRepo: *repo}
}

func (r *ClientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (name, email, phone, created_at, updated_at)
		VALUES (:name, :email, :phone, :created_at, :updated_at)
		RETURNING id`

	rows, err := r.db.GetDB().NamedQueryContext(ctx, query, client)
	if err != nil {
		return errors.NewDatabaseError("failed to create client", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&client.ID); err != nil {
			return errors.NewDatabaseError("failed to read client id", err)
		}
	}
	return nil
}

func (r *ClientRepo) Get(ctx context.Context, id int64) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT * FROM clients WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, client, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("Client not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get client", err)
	}
	return client, nil
}

func (r *ClientRepo) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients SET
			name = :name,
			email = :email,
			phone = :phone,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, client)
	if err != nil {
		return errors.NewDatabaseError("failed to update client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("Client not found", nil)
	}

	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("Client not found", nil)
	}

	return nil
}

func (r *ClientRepo) List(ctx context.Context, offset, limit int) ([]*models.Client, error) {
	clients := []*models.Client{}
	query := `SELECT * FROM clients ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	err := r.db.GetDB().SelectContext(ctx, &clients, query, offset, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list clients", err)
	}

	return clients, nil
}
