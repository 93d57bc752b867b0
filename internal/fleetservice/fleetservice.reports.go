// FilePath: internal/fleetservice/fleetservice.reports.go
package fleetservice

import (
	"context"
	"strconv"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
	"github.com/Bochorn0/aquatech-api-sub001/internal/report"
)

const dayFormat = "2006-01-02"

// resolveProduct accepts either the numeric product id or the hardware device
// id, the two keys devices and dashboards use interchangeably.
func (s *FleetService) resolveProduct(ctx context.Context, id string) (*models.Product, error) {
	if numericID, err := strconv.ParseInt(id, 10, 64); err == nil {
		product, err := s.Products.Get(ctx, numericID)
		if err == nil {
			return product, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}

	product, err := s.Products.GetByDeviceID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("Product not found", err)
		}
		return nil, err
	}
	return product, nil
}

// parseDay interprets a YYYY-MM-DD string in the report timezone.
func (s *FleetService) parseDay(value string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, value, s.buckets.Location())
}

// parseBoundary accepts either a full RFC3339 instant or a plain day.
// A plain day resolves to the start (or end) of that local day.
func (s *FleetService) parseBoundary(value string, endOfDay bool) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}
	day, err := s.parseDay(value)
	if err != nil {
		return time.Time{}, err
	}
	start, end := s.buckets.DayWindow(day.Year(), day.Month(), day.Day())
	if endOfDay {
		return end, nil
	}
	return start, nil
}

// ProductLogsReport builds the hourly statistics report for one product.
// Defaults to the current local day when no date or range is given.
func (s *FleetService) ProductLogsReport(ctx context.Context, q models.ProductLogsQuery) (data *models.ProductLogsData, err error) {
	started := time.Now()
	defer func() {
		if s.Metrics != nil {
			s.Metrics.ObserveReport("product_logs", started, err)
		}
	}()

	if q.ProductID == "" {
		return nil, errors.NewValidationError("product_id is required", nil)
	}

	product, err := s.resolveProduct(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}

	var (
		dateFrom, dateTo time.Time
		singleDay        bool
	)
	data = &models.ProductLogsData{Product: product}

	switch {
	case q.Date != "":
		day, parseErr := s.parseDay(q.Date)
		if parseErr != nil {
			return nil, errors.NewValidationError("date must be YYYY-MM-DD", parseErr)
		}
		dateFrom, dateTo = s.buckets.DayWindow(day.Year(), day.Month(), day.Day())
		singleDay = true
		data.Date = q.Date
	case q.StartDate != "" && q.EndDate != "":
		dateFrom, err = s.parseBoundary(q.StartDate, false)
		if err != nil {
			return nil, errors.NewValidationError("start_date must be YYYY-MM-DD or RFC3339", err)
		}
		dateTo, err = s.parseBoundary(q.EndDate, true)
		if err != nil {
			return nil, errors.NewValidationError("end_date must be YYYY-MM-DD or RFC3339", err)
		}
		if dateFrom.After(dateTo) {
			return nil, errors.NewValidationError("start_date must not be after end_date", nil)
		}
		data.StartDate = q.StartDate
		data.EndDate = q.EndDate
	case q.StartDate != "" || q.EndDate != "":
		return nil, errors.NewValidationError("start_date and end_date must be provided together", nil)
	default:
		now := time.Now().In(s.buckets.Location())
		dateFrom, dateTo = s.buckets.DayWindow(now.Year(), now.Month(), now.Day())
		singleDay = true
		data.Date = now.Format(dayFormat)
	}

	filter := models.LogFilter{
		ProductID: product.DeviceID,
		DateFrom:  &dateFrom,
		DateTo:    &dateTo,
		WithData:  true,
	}

	totalCount, err := s.Logs.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	logs, err := s.Logs.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	hours, total := s.hourly.Build(report.HourlyParams{
		Product:      product,
		Logs:         logs,
		SingleDay:    singleDay,
		UseLastValue: q.UseLastValue,
		TotalCount:   totalCount,
	})
	data.HoursWithData = hours
	data.TotalLogs = total

	nuts.L.Infof("[ReportService] Built product-logs report for %s: %d logs, %d hours", product.DeviceID, total, len(hours))
	return data, nil
}

// DailyReport builds the per-day production summary for every product of a
// punto de venta. Defaults to the trailing configured range ending today.
func (s *FleetService) DailyReport(ctx context.Context, q models.DailyReportQuery) (data *models.DailyReportData, err error) {
	started := time.Now()
	defer func() {
		if s.Metrics != nil {
			s.Metrics.ObserveReport("daily", started, err)
		}
	}()

	if q.PuntoVentaID <= 0 {
		return nil, errors.NewValidationError("puntoVentaId is required", nil)
	}

	if _, err = s.PuntosVenta.Get(ctx, q.PuntoVentaID); err != nil {
		return nil, err
	}

	products, err := s.Products.ListByPuntoVenta(ctx, q.PuntoVentaID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		// No devices assigned: a valid, empty report. The log store is not
		// consulted at all.
		return &models.DailyReportData{Days: []models.DayEntry{}}, nil
	}

	endDay := time.Now().In(s.buckets.Location())
	startDay := endDay.AddDate(0, 0, -s.reportCfg.DefaultRangeDays)
	if q.DateStart != "" {
		if startDay, err = s.parseDay(q.DateStart); err != nil {
			return nil, errors.NewValidationError("dateStart must be YYYY-MM-DD", err)
		}
	}
	if q.DateEnd != "" {
		if endDay, err = s.parseDay(q.DateEnd); err != nil {
			return nil, errors.NewValidationError("dateEnd must be YYYY-MM-DD", err)
		}
	}
	if startDay.After(endDay) {
		return nil, errors.NewValidationError("dateStart must not be after dateEnd", nil)
	}

	dateFrom, _ := s.buckets.DayWindow(startDay.Year(), startDay.Month(), startDay.Day())
	_, dateTo := s.buckets.DayWindow(endDay.Year(), endDay.Month(), endDay.Day())

	deviceIDs := make([]string, len(products))
	for i, p := range products {
		deviceIDs[i] = p.DeviceID
	}

	logs, err := s.Logs.Find(ctx, models.LogFilter{
		ProductIDs: deviceIDs,
		DateFrom:   &dateFrom,
		DateTo:     &dateTo,
		WithData:   true,
	})
	if err != nil {
		return nil, err
	}

	built := s.daily.Build(products, logs)
	if built.Days == nil {
		built.Days = []models.DayEntry{}
	}
	data = &built

	nuts.L.Infof("[ReportService] Built daily report for punto de venta %d: %d days, %d logs",
		q.PuntoVentaID, built.Summary.TotalDias, built.Summary.TotalLogs)
	return data, nil
}

// TimeSeries returns database-side bucket aggregates for one reading field,
// for dashboard charts that want raw resolution control.
func (s *FleetService) TimeSeries(ctx context.Context, q models.TimeSeriesQuery) ([]models.FieldAggregate, error) {
	if q.ProductID == "" {
		return nil, errors.NewValidationError("product_id is required", nil)
	}
	if q.Field == "" {
		return nil, errors.NewValidationError("field is required", nil)
	}

	product, err := s.resolveProduct(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}

	interval := q.Interval
	if interval == "" {
		interval = "1 hour"
	}

	end := time.Now().UTC()
	start := end.Add(-24 * time.Hour)
	if q.Start != "" {
		if start, err = s.parseBoundary(q.Start, false); err != nil {
			return nil, errors.NewValidationError("start must be YYYY-MM-DD or RFC3339", err)
		}
	}
	if q.End != "" {
		if end, err = s.parseBoundary(q.End, true); err != nil {
			return nil, errors.NewValidationError("end must be YYYY-MM-DD or RFC3339", err)
		}
	}

	return s.Logs.FieldAggregates(ctx, product.DeviceID, models.ReadingField(q.Field), start, end, interval)
}
