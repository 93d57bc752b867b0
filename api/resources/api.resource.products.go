// FilePath: api/resources/api.resource.products.go
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

// ProductHandlers encapsulates the product-related HTTP handlers
type ProductHandlers struct {
	service *fleetservice.FleetService
}

// @Summary Create a new product
// @Description Register a new fleet device
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.Product true "Product details"
// @Success 201 {object} models.Product
// @Failure 400 {object} errors.APIError
// @Router /products [post]
// @Security BearerAuth
func (h *ProductHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateProduct(r.Context(), &product); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusCreated, product)
}

// @Summary Get a product
// @Description Get a product by numeric id or device id
// @Tags products
// @Produce json
// @Param id path string true "Product ID or device ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} errors.APIError
// @Router /products/{id} [get]
func (h *ProductHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	id := mux.Vars(r)["id"]

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, product)
}

// @Summary List products
// @Description Get a paginated list of products
// @Tags products
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *ProductHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	products, err := h.service.ListProducts(r.Context(), offset, limit)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, products)
}

// @Summary Update a product
// @Description Update an existing product's details
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body models.Product true "Updated product details"
// @Success 200 {object} models.Product
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /products/{id} [put]
// @Security BearerAuth
func (h *ProductHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid product id", err).WithRequestID(requestID))
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	product.ID = id
	if err := h.service.UpdateProduct(r.Context(), &product); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, product)
}

// @Summary Delete a product
// @Description Delete a product and all its telemetry
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /products/{id} [delete]
// @Security BearerAuth
func (h *ProductHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid product id", err).WithRequestID(requestID))
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Product live status
// @Description Latest reading snapshot and online state for one device
// @Tags products
// @Produce json
// @Param id path string true "Product ID or device ID"
// @Success 200 {object} models.ProductStatus
// @Failure 404 {object} errors.APIError
// @Router /products/{id}/status [get]
func (h *ProductHandlers) GetProductStatus(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	id := mux.Vars(r)["id"]

	status, err := h.service.GetProductStatus(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, status)
}
