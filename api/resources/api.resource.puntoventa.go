// FilePath: api/resources/api.resource.puntoventa.go
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

// PuntoVentaHandlers encapsulates the punto de venta HTTP handlers
type PuntoVentaHandlers struct {
	service *fleetservice.FleetService
}

func puntoVentaID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// @Summary Create a punto de venta
// @Tags puntos-venta
// @Accept json
// @Produce json
// @Param punto body models.PuntoVenta true "Punto de venta details"
// @Success 201 {object} models.PuntoVenta
// @Failure 400 {object} errors.APIError
// @Router /puntos-venta [post]
// @Security BearerAuth
func (h *PuntoVentaHandlers) CreatePuntoVenta(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var punto models.PuntoVenta
	if err := json.NewDecoder(r.Body).Decode(&punto); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreatePuntoVenta(r.Context(), &punto); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusCreated, punto)
}

// @Summary Get a punto de venta
// @Tags puntos-venta
// @Produce json
// @Param id path int true "Punto de venta ID"
// @Success 200 {object} models.PuntoVenta
// @Failure 404 {object} errors.APIError
// @Router /puntos-venta/{id} [get]
func (h *PuntoVentaHandlers) GetPuntoVenta(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := puntoVentaID(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid punto de venta id", err).WithRequestID(requestID))
		return
	}

	punto, err := h.service.GetPuntoVenta(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, punto)
}

// @Summary List puntos de venta
// @Tags puntos-venta
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.PuntoVenta
// @Router /puntos-venta [get]
func (h *PuntoVentaHandlers) ListPuntosVenta(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	puntos, err := h.service.ListPuntosVenta(r.Context(), offset, limit)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, puntos)
}

// @Summary List products of a punto de venta
// @Tags puntos-venta
// @Produce json
// @Param id path int true "Punto de venta ID"
// @Success 200 {array} models.ProductRef
// @Failure 404 {object} errors.APIError
// @Router /puntos-venta/{id}/products [get]
func (h *PuntoVentaHandlers) ListPuntoVentaProducts(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := puntoVentaID(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid punto de venta id", err).WithRequestID(requestID))
		return
	}

	products, err := h.service.ListPuntoVentaProducts(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, products)
}

// @Summary Update a punto de venta
// @Tags puntos-venta
// @Accept json
// @Produce json
// @Param id path int true "Punto de venta ID"
// @Param punto body models.PuntoVenta true "Updated details"
// @Success 200 {object} models.PuntoVenta
// @Failure 404 {object} errors.APIError
// @Router /puntos-venta/{id} [put]
// @Security BearerAuth
func (h *PuntoVentaHandlers) UpdatePuntoVenta(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := puntoVentaID(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid punto de venta id", err).WithRequestID(requestID))
		return
	}

	var punto models.PuntoVenta
	if err := json.NewDecoder(r.Body).Decode(&punto); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	punto.ID = id
	if err := h.service.UpdatePuntoVenta(r.Context(), &punto); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, punto)
}

// @Summary Delete a punto de venta
// @Tags puntos-venta
// @Param id path int true "Punto de venta ID"
// @Success 204
// @Failure 400 {object} errors.APIError
// @Router /puntos-venta/{id} [delete]
// @Security BearerAuth
func (h *PuntoVentaHandlers) DeletePuntoVenta(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := puntoVentaID(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid punto de venta id", err).WithRequestID(requestID))
		return
	}

	if err := h.service.DeletePuntoVenta(r.Context(), id); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
