// FilePath: internal/repository/timescale/timescale.product_logs.go
package timescale

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Bochorn0/aquatech-api-sub001/internal/database"
	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
	"github.com/lib/pq"
	nuts "github.com/vaudience/go-nuts"
)

// ProductLogRepo stores raw device telemetry in a TimescaleDB hypertable.
// Rows are append-only; the reporting engine only ever reads them.
type ProductLogRepo struct {
	db database.DB
}

func NewProductLogRepository(db database.DB) (*ProductLogRepo, error) {
	repo := &ProductLogRepo{db: db}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ProductLogRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS product_logs (
			id BIGSERIAL,
			product_id BIGINT,
			product_device_id TEXT NOT NULL,
			tds DOUBLE PRECISION,
			production_volume DOUBLE PRECISION,
			rejected_volume DOUBLE PRECISION,
			temperature DOUBLE PRECISION,
			flujo_produccion DOUBLE PRECISION,
			flujo_rechazo DOUBLE PRECISION,
			source TEXT NOT NULL DEFAULT 'esp32',
			date TIMESTAMPTZ NOT NULL
		)`,
		`SELECT create_hypertable('product_logs', 'date',
			chunk_time_interval => INTERVAL '1 day',
			if_not_exists => TRUE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_product_logs_device_date
			ON product_logs(product_device_id, date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_product_logs_product_date
			ON product_logs(product_id, date DESC)`,
	}

	for _, query := range queries {
		_, err := r.db.GetDB().Exec(query)
		if err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}
	return nil
}

func (r *ProductLogRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *ProductLogRepo) Insert(ctx context.Context, log *models.ProductLog) error {
	if log.Date.IsZero() {
		log.Date = time.Now().UTC()
	}
	if log.Source == "" {
		log.Source = "esp32"
	}
	query := `
		INSERT INTO product_logs (
			product_id, product_device_id, tds, production_volume,
			rejected_volume, temperature, flujo_produccion, flujo_rechazo,
			source, date
		) VALUES (
			:product_id, :product_device_id, :tds, :production_volume,
			:rejected_volume, :temperature, :flujo_produccion, :flujo_rechazo,
			:source, :date
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, log)
	if err != nil {
		return errors.NewDatabaseError("failed to insert product log", err)
	}
	return nil
}

// buildWhere translates a LogFilter into a WHERE clause. A single ProductID
// matches either the numeric id or the device id, mirroring how devices
// reference products by either key.
func buildWhere(filter models.LogFilter) (string, []interface{}) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if filter.ProductID != "" {
		where = append(where, fmt.Sprintf("(product_id::text = $%d OR product_device_id = $%d)", i, i))
		args = append(args, filter.ProductID)
		i++
	}
	if len(filter.ProductIDs) > 0 {
		where = append(where, fmt.Sprintf("(product_id::text = ANY($%d) OR product_device_id = ANY($%d))", i, i))
		args = append(args, pq.Array(filter.ProductIDs))
		i++
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("date >= $%d", i))
		args = append(args, *filter.DateFrom)
		i++
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("date <= $%d", i))
		args = append(args, *filter.DateTo)
		i++
	}
	if filter.WithData {
		where = append(where, `(tds IS NOT NULL OR production_volume IS NOT NULL
			OR rejected_volume IS NOT NULL OR temperature IS NOT NULL
			OR flujo_produccion IS NOT NULL OR flujo_rechazo IS NOT NULL)`)
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

func (r *ProductLogRepo) Find(ctx context.Context, filter models.LogFilter) ([]models.ProductLog, error) {
	logs := []models.ProductLog{}
	whereClause, args := buildWhere(filter)

	query := fmt.Sprintf(`SELECT * FROM product_logs WHERE %s ORDER BY date ASC`, whereClause)
	if filter.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, filter.Limit)
	}

	err := r.db.GetDB().SelectContext(ctx, &logs, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to find product logs", err)
	}
	return logs, nil
}

func (r *ProductLogRepo) Count(ctx context.Context, filter models.LogFilter) (int64, error) {
	whereClause, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM product_logs WHERE %s`, whereClause)

	var count int64
	err := r.db.GetDB().GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to count product logs", err)
	}
	return count, nil
}

// LatestWithData returns the newest log carrying at least one non-zero
// reading, used for the live status snapshot when the cache is cold.
func (r *ProductLogRepo) LatestWithData(ctx context.Context, deviceID string) (*models.ProductLog, error) {
	log := &models.ProductLog{}
	query := `
		SELECT * FROM product_logs
		WHERE product_device_id = $1
			AND (COALESCE(tds, 0) != 0 OR COALESCE(production_volume, 0) != 0
				OR COALESCE(rejected_volume, 0) != 0 OR COALESCE(temperature, 0) != 0
				OR COALESCE(flujo_produccion, 0) != 0 OR COALESCE(flujo_rechazo, 0) != 0)
		ORDER BY date DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, log, query, deviceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no log data for device", err)
		}
		return nil, errors.NewDatabaseError("failed to get latest log", err)
	}
	return log, nil
}

var aggregatableFields = map[models.ReadingField]string{
	models.FieldTds:              "tds",
	models.FieldProductionVolume: "production_volume",
	models.FieldRejectedVolume:   "rejected_volume",
	models.FieldTemperature:      "temperature",
	models.FieldFlujoProduccion:  "flujo_produccion",
	models.FieldFlujoRechazo:     "flujo_rechazo",
}

var validIntervals = map[string]bool{
	"1 minute": true, "5 minutes": true, "15 minutes": true,
	"1 hour": true, "6 hours": true, "1 day": true,
}

// FieldAggregates rolls one reading column into time_bucket rows on the
// database side. Column and interval come from closed allow-lists; only
// values are parameterized.
func (r *ProductLogRepo) FieldAggregates(ctx context.Context, productID string, field models.ReadingField, start, end time.Time, interval string) ([]models.FieldAggregate, error) {
	column, ok := aggregatableFields[field]
	if !ok {
		return nil, errors.NewValidationError("invalid field", nil)
	}
	if !validIntervals[interval] {
		return nil, errors.NewValidationError("invalid interval", nil)
	}

	aggregates := []models.FieldAggregate{}
	query := fmt.Sprintf(`
		SELECT
			time_bucket('%s'::interval, date) AS bucket,
			AVG(%s) AS avg,
			MIN(%s) AS min,
			MAX(%s) AS max,
			COUNT(%s) AS count
		FROM product_logs
		WHERE (product_id::text = $1 OR product_device_id = $1)
			AND %s IS NOT NULL
			AND date BETWEEN $2 AND $3
		GROUP BY bucket
		ORDER BY bucket ASC`, interval, column, column, column, column, column)

	err := r.db.GetDB().SelectContext(ctx, &aggregates, query, productID, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get field aggregates", err)
	}
	return aggregates, nil
}

func (r *ProductLogRepo) DeleteByProduct(ctx context.Context, productID int64, deviceID string, tx database.Transaction) error {
	query := `DELETE FROM product_logs WHERE product_id = $1 OR product_device_id = $2`

	result, err := tx.ExecContext(ctx, query, productID, deviceID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete product logs", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[TimescaleDB] Deleted %d logs for product %d (%s)", rows, productID, deviceID)
	return nil
}
