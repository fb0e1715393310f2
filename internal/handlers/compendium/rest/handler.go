// Package rest serves a read-only JSON view of the catalog over HTTP
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/repositories/catalog"
)

// HandlerConfig holds dependencies for the HTTP handler
type HandlerConfig struct {
	Repository catalog.Repository
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}

	return vb.Build()
}

// Handler serves catalog reads as JSON
type Handler struct {
	repo catalog.Repository
}

// NewHandler creates an HTTP catalog handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{repo: cfg.Repository}, nil
}

// AbilityList is the body of a list response
type AbilityList struct {
	Abilities []*drawsteel.AbilityRecord `json:"abilities"`
	Total     int                        `json:"total"`
}

// ErrorBody is the body of every non-2xx response
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

const apiPrefix = "/api/v1alpha1"

// Router returns the routes:
//
//	GET /healthz
//	GET /api/v1alpha1/abilities?class=&owner=
//	GET /api/v1alpha1/abilities/{id}
//	GET /api/v1alpha1/features/{id}
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	// routes stay on the root router so a method mismatch reaches
	// MethodNotAllowedHandler instead of NotFoundHandler
	r.HandleFunc(apiPrefix+"/abilities", h.listAbilities).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/abilities/{id}", h.getAbility).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/features/{id}", h.getFeature).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, errors.NotFound("no such route"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = json.NewEncoder(w).Encode(ErrorBody{
			Error:   http.StatusText(http.StatusMethodNotAllowed),
			Code:    string(errors.CodeInvalidArgument),
			Message: "GET only",
			Status:  http.StatusMethodNotAllowed,
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listAbilities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.repo.ListAbilities(r.Context(), catalog.ListAbilitiesInput{
		Class:   strings.TrimSpace(q.Get("class")),
		OwnerID: strings.TrimSpace(q.Get("owner")),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	abilities := out.Abilities
	if abilities == nil {
		abilities = []*drawsteel.AbilityRecord{}
	}
	writeJSON(w, http.StatusOK, AbilityList{Abilities: abilities, Total: len(abilities)})
}

func (h *Handler) getAbility(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.GetAbility(r.Context(), catalog.GetAbilityInput{ID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Ability)
}

func (h *Handler) getFeature(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.GetFeature(r.Context(), catalog.GetFeatureInput{ID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Feature)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	message := errors.GetMessage(err)
	if status >= http.StatusInternalServerError {
		slog.Error("catalog request failed", "error", err)
		message = "internal error"
	}

	writeJSON(w, status, ErrorBody{
		Error:   http.StatusText(status),
		Code:    string(code),
		Message: message,
		Status:  status,
	})
}
