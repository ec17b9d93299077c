package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"homeward/internal/auth"
	"homeward/internal/users/service"
	httputil "homeward/pkg/http"
	"homeward/pkg/logger"
	"homeward/pkg/model"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GrantEmployee upserts a user record with role EMPLOYEE. Requires the
// resolved ADMIN role.
func (h *UserHandler) GrantEmployee(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := auth.RequireAdmin(r); err != nil {
		h.writeError(w, "GrantEmployee", err)
		return
	}

	var grant model.EmployeeGrant
	if err := json.NewDecoder(r.Body).Decode(&grant); err != nil {
		h.writeJSON(w, "GrantEmployee", http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.GrantEmployee(r.Context(), &grant); err != nil {
		h.writeError(w, "GrantEmployee", err)
		return
	}

	if err := httputil.WriteCreated(w, map[string]any{"external_id": grant.ExternalID}); err != nil {
		h.log.Error("failed to write created response", "handler", "GrantEmployee", "error", err)
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := auth.RequireAdmin(r); err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	users, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, users, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *UserHandler) writeJSON(w http.ResponseWriter, handler string, status int, body any) {
	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/admin/employees", h.GrantEmployee)
	router.GET("/api/v1/admin/employees", h.GetAll)
}
