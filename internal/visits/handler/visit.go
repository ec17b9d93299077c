package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"homeward/internal/auth"
	"homeward/internal/visits/service"
	"homeward/pkg/config"
	httputil "homeward/pkg/http"
	"homeward/pkg/logger"
	"homeward/pkg/model"
)

type VisitHandler struct {
	service service.VisitService
	cfg     *config.Config
	log     *logger.Logger
}

func NewVisitHandler(service service.VisitService, cfg *config.Config) *VisitHandler {
	return &VisitHandler{
		service: service,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

// Schedule books a home visit for an adoption application.
func (h *VisitHandler) Schedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, err := auth.RequireEmployee(r)
	if err != nil {
		h.writeError(w, "Schedule", err)
		return
	}

	var req model.VisitSchedule
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "Schedule")
		return
	}

	visit, err := h.service.Schedule(r.Context(), &req, principal)
	if err != nil {
		h.writeError(w, "Schedule", err)
		return
	}

	if err := httputil.WriteCreated(w, visit); err != nil {
		h.log.Error("failed to write created response", "handler", "Schedule", "error", err)
	}
}

type claimRequest struct {
	VisitID string `json:"visit_id"`
}

// Claim assigns an open visit to the calling employee.
func (h *VisitHandler) Claim(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, err := auth.RequireEmployee(r)
	if err != nil {
		h.writeError(w, "Claim", err)
		return
	}

	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "Claim")
		return
	}

	visit, err := h.service.Claim(r.Context(), req.VisitID, principal)
	if err != nil {
		h.writeError(w, "Claim", err)
		return
	}

	if err := httputil.WriteSuccess(w, visit); err != nil {
		h.log.Error("failed to write success response", "handler", "Claim", "error", err)
	}
}

// Complete records the outcome of a claimed visit.
func (h *VisitHandler) Complete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, err := auth.RequireEmployee(r)
	if err != nil {
		h.writeError(w, "Complete", err)
		return
	}

	var req model.VisitCompletion
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "Complete")
		return
	}

	result, err := h.service.Complete(r.Context(), &req, principal)
	if err != nil {
		h.writeError(w, "Complete", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Complete", "error", err)
	}
}

// List serves the visit dashboard for employees. Scope defaults to pending.
func (h *VisitHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := auth.RequireEmployee(r); err != nil {
		h.writeError(w, "List", err)
		return
	}

	visits, err := h.service.List(r.Context(), r.URL.Query().Get("scope"))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, visits); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

type sweepResponse struct {
	Removed int `json:"removed"`
}

// Sweep removes stale open visits whose pet reservation never took hold.
func (h *VisitHandler) Sweep(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := auth.RequireAdmin(r); err != nil {
		h.writeError(w, "Sweep", err)
		return
	}

	removed, err := h.service.SweepOrphans(r.Context())
	if err != nil {
		h.writeError(w, "Sweep", err)
		return
	}

	if err := httputil.WriteSuccess(w, sweepResponse{Removed: removed}); err != nil {
		h.log.Error("failed to write success response", "handler", "Sweep", "error", err)
	}
}

func (h *VisitHandler) writeBadBody(w http.ResponseWriter, handler string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "error", err)
	}
}

func (h *VisitHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *VisitHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/visits", h.Schedule)
	router.POST("/api/v1/visits/claim", h.Claim)
	router.POST("/api/v1/visits/complete", h.Complete)
	router.GET("/api/v1/visits", h.List)
	router.POST("/api/v1/admin/visits/sweep", h.Sweep)
}
