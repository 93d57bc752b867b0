// FilePath: api/resources/api.resource.clients.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/internal/errors"
	"github.com/Bochorn0/aquatech-api-sub001/internal/fleetservice"
	"github.com/Bochorn0/aquatech-api-sub001/internal/models"
)

// ClientHandlers encapsulates the client account HTTP handlers
type ClientHandlers struct {
	service *fleetservice.FleetService
}

// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body models.Client true "Client details"
// @Success 201 {object} models.Client
// @Failure 400 {object} errors.APIError
// @Router /clients [post]
// @Security BearerAuth
func (h *ClientHandlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateClient(r.Context(), &client); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusCreated, client)
}

// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} errors.APIError
// @Router /clients/{id} [get]
func (h *ClientHandlers) GetClient(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid client id", err).WithRequestID(requestID))
		return
	}

	client, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, client)
}

// @Summary List clients
// @Tags clients
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Client
// @Router /clients [get]
func (h *ClientHandlers) ListClients(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	clients, err := h.service.ListClients(r.Context(), offset, limit)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, clients)
}

// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param client body models.Client true "Updated details"
// @Success 200 {object} models.Client
// @Failure 404 {object} errors.APIError
// @Router /clients/{id} [put]
// @Security BearerAuth
func (h *ClientHandlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid client id", err).WithRequestID(requestID))
		return
	}

	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	client.ID = id
	if err := h.service.UpdateClient(r.Context(), &client); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, client)
}

// @Summary Delete a client
// @Tags clients
// @Param id path int true "Client ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /clients/{id} [delete]
// @Security BearerAuth
func (h *ClientHandlers) DeleteClient(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid client id", err).WithRequestID(requestID))
		return
	}

	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
