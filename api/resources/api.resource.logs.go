// FilePath: api/resources/api.resource.logs.go
package resources

import (
	"encoding/json"
	"io"
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/fleetservice"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// LogHandlers encapsulates the telemetry ingestion HTTP handlers
type LogHandlers struct {
	service *fleetservice.FleetService
}

// maxIngestBody caps a single ingestion request. Device batches are small;
// anything near this size is a misbehaving client.
const maxIngestBody = 4 << 20

// decodeLogs accepts either a batch array or a single log object; devices in
// the field send both shapes.
func decodeLogs(r *http.Request) ([]models.ProductLog, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxIngestBody))
	if err != nil {
		return nil, errors.NewValidationError("failed to read request body", err)
	}

	var batch []models.ProductLog
	if err := json.Unmarshal(raw, &batch); err == nil {
		return batch, nil
	}

	var single models.ProductLog
	if err := json.Unmarshal(raw, &single); err == nil {
		return []models.ProductLog{single}, nil
	}
	return nil, errors.NewValidationError("request body must be a log or an array of logs", nil)
}

// @Summary Ingest telemetry logs
// @Description Store a batch of raw device logs; bad records are skipped
// @Tags logs
// @Accept json
// @Produce json
// @Param logs body []models.ProductLog true "Array of telemetry logs"
// @Success 201 {object} map[string]int
// @Failure 400 {object} errors.APIError
// @Router /logs [post]
// @Security BearerAuth
func (h *LogHandlers) IngestLogs(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	logs, err := decodeLogs(r)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}
	if len(logs) == 0 {
		respondWithError(w, errors.NewValidationError("empty log batch", nil).WithRequestID(requestID))
		return
	}

	accepted, err := h.service.IngestLogs(r.Context(), logs)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusCreated, map[string]int{
		"received": len(logs),
		"accepted": accepted,
	})
}
