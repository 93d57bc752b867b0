// FilePath: internal/fleetservice/fleetservice.go
package fleetservice

import (
	"context"
	"time"

	"github.com/Bochorn0/aquatech-api-sub001/internal/cache"
	"github.com/Bochorn0/aquatech-api-sub001/internal/cleanup"
	"github.com/Bochorn0/aquatech-api-sub001/internal/config"
	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/monitoring"
	"github.com/Bochorn0/aquatech-api-sub001/internal/report"
	"github.com/Bochorn0/aquatech-api-sub001/internal/repository"
)

// FleetService contains all repositories and service-wide dependencies
type FleetService struct {
	Products    repository.ProductRepository
	PuntosVenta repository.PuntoVentaRepository
	Clients     repository.ClientRepository
	Logs        repository.ProductLogRepository
	Latest      *cache.LatestReadingCache
	Metrics     *monitoring.Metrics
	Cleanup     *cleanup.CleanupService

	reportCfg config.ReportConfig
	buckets   *report.Bucketer
	converter *report.UnitConverter
	hourly    *report.HourlyBuilder
	daily     *report.DailyBuilder
}

// New creates a new FleetService instance. The report timezone must be a
// valid IANA name; config validation catches bad values before this runs.
func New(
	products repository.ProductRepository,
	puntosVenta repository.PuntoVentaRepository,
	clients repository.ClientRepository,
	logs repository.ProductLogRepository,
	latest *cache.LatestReadingCache,
	metrics *monitoring.Metrics,
	reportCfg config.ReportConfig,
) (*FleetService, error) {
	loc, err := time.LoadLocation(reportCfg.Timezone)
	if err != nil {
		return nil, errors.NewInternalError("invalid report timezone", err)
	}

	converter := report.NewUnitConverter(reportCfg.SpecialDeviceIDs)
	buckets := report.NewBucketer(loc)

	svc := &FleetService{
		Products:    products,
		PuntosVenta: puntosVenta,
		Clients:     clients,
		Logs:        logs,
		Latest:      latest,
		Metrics:     metrics,
		reportCfg:   reportCfg,
		buckets:     buckets,
		converter:   converter,
		hourly:      report.NewHourlyBuilder(converter, buckets, reportCfg.VolumeThreshold),
		daily:       report.NewDailyBuilder(converter, buckets, report.NewMinMaxDelta(converter)),
	}
	svc.Cleanup = cleanup.New(products, logs, latest)
	return svc, nil
}

// Validate checks if all required repositories are initialized
func (s *FleetService) Validate() error {
	if s.Products == nil {
		return ErrMissingRepository("products")
	}
	if s.PuntosVenta == nil {
		return ErrMissingRepository("puntosVenta")
	}
	if s.Clients == nil {
		return ErrMissingRepository("clients")
	}
	if s.Logs == nil {
		return ErrMissingRepository("logs")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

// GetUserRoles retrieves user roles from context as the auth middleware
// stored them.
func GetUserRoles(ctx context.Context) []string {
	if roles := ctx.Value(UserRolesKey); roles != nil {
		if r, ok := roles.([]string); ok {
			return r
		}
	}
	return []string{"guest"}
}

type contextKey string

// UserRolesKey is the context key the auth middleware stores realm roles under.
const UserRolesKey contextKey = "user_roles"
