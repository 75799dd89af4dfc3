package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dinehub/internal/model"
	"dinehub/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// MenuHandler handles menu catalogue HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// List handles GET /api/menu requests with optional filters.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := model.MenuFilter{
		Category: query.Get("category"),
	}

	if v := query.Get("availability"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid availability parameter", h.logger)
			return
		}
		filter.Availability = &available
	}

	if v := query.Get("minPrice"); v != "" {
		minPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid minPrice parameter", h.logger)
			return
		}
		filter.MinPrice = &minPrice
	}

	if v := query.Get("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid maxPrice parameter", h.logger)
			return
		}
		filter.MaxPrice = &maxPrice
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve menu items", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Search handles GET /api/menu/search requests.
func (h *MenuHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search menu items", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /api/menu/{id} requests.
func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.menuItemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to retrieve menu item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/menu requests.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "failed to create menu item")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/menu/{id} requests.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.menuItemID(w, r)
	if !ok {
		return
	}

	var req model.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeServiceError(w, err, "failed to update menu item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/menu/{id} requests.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.menuItemID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "failed to delete menu item")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Menu item deleted successfully"})
}

// ToggleAvailability handles PATCH /api/menu/{id}/availability requests.
func (h *MenuHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := h.menuItemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.ToggleAvailability(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to toggle availability")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// menuItemID extracts and parses the {id} path variable. On failure it
// writes a 400 and returns ok=false.
func (h *MenuHandler) menuItemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu item ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps a menu service error to an HTTP response.
// Lookup failures are 404s, validation failures 400s, everything else a
// generic 500.
func (h *MenuHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var derr *model.DomainError
	if errors.As(err, &derr) {
		status := http.StatusBadRequest
		if derr.Code == model.ErrCodeMenuItemNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, derr.Message, h.logger)
		return
	}

	writeError(w, http.StatusInternalServerError, fallback, h.logger)
}
