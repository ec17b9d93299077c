package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"homeward/internal/auth"
	"homeward/internal/pets/service"
	"homeward/pkg/config"
	httputil "homeward/pkg/http"
	"homeward/pkg/logger"
	"homeward/pkg/model"
)

type PetHandler struct {
	service service.PetService
	cfg     *config.Config
	log     *logger.Logger
}

func NewPetHandler(service service.PetService, cfg *config.Config) *PetHandler {
	return &PetHandler{
		service: service,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

// GetAll serves the public catalog, optionally filtered by status.
func (h *PetHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	statusFilter := r.URL.Query().Get("status")

	pets, total, err := h.service.GetAll(r.Context(), statusFilter, limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, pets, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *PetHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pet, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, pet); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

// Create adds a pet to the catalog. Gated on the admin allow-list, not the
// stored role.
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := auth.RequireAllowListedAdmin(r, h.cfg.IsAdminExternalID); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	var create model.PetCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	pet, err := h.service.Create(r.Context(), &create)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, pet); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if _, err := auth.RequireAllowListedAdmin(r, h.cfg.IsAdminExternalID); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PetHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *PetHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/pets", h.GetAll)
	router.GET("/api/v1/pets/id/:id", h.GetByID)
	router.POST("/api/v1/admin/pets", h.Create)
	router.DELETE("/api/v1/admin/pets/id/:id", h.Delete)
}
