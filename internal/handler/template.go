package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/victorsprings/notification-service/internal/domain"
	"github.com/victorsprings/notification-service/internal/service"
)

// TemplateHandler handles template HTTP requests
type TemplateHandler struct {
	service *service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(service *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// RegisterRoutes registers the read-only template routes
func (h *TemplateHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{kind}", h.Get)
	r.Post("/{kind}/render", h.Render)
}

// RegisterAdminRoutes registers the template edit route
func (h *TemplateHandler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/{kind}", h.Update)
}

func kindParam(r *http.Request) domain.MessageKind {
	return domain.MessageKind(chi.URLParam(r, "kind"))
}

// List retrieves all templates
// @Summary List templates
// @Description Get every message template in the catalog
// @Tags templates
// @Produce json
// @Success 200 {object} Response{data=[]domain.Template}
// @Router /api/v1/templates [get]
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.service.List())
}

// Get retrieves a template by kind
// @Summary Get template
// @Description Get the template for a message kind
// @Tags templates
// @Produce json
// @Param kind path string true "Message kind"
// @Success 200 {object} Response{data=domain.Template}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/templates/{kind} [get]
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.service.Get(kindParam(r))
	if err != nil {
		HandleError(w, err)
		return
	}

	JSON(w, http.StatusOK, tmpl)
}

// RenderRequest represents a request to preview a template
type RenderRequest struct {
	Data domain.EventData `json:"data"`
}

// Render previews a template with the given values without sending anything
// @Summary Render template
// @Description Render a template with sample values and report missing fields
// @Tags templates
// @Accept json
// @Produce json
// @Param kind path string true "Message kind"
// @Param request body RenderRequest true "Template values"
// @Success 200 {object} Response{data=service.Preview}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/templates/{kind}/render [post]
func (h *TemplateHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := DecodeJSON(r, &req); err != nil {
		HandleError(w, err)
		return
	}

	preview, err := h.service.Render(kindParam(r), req.Data)
	if err != nil {
		HandleError(w, err)
		return
	}

	JSON(w, http.StatusOK, preview)
}

// UpdateTemplateRequest represents a request to update a template
type UpdateTemplateRequest struct {
	Subject *string `json:"subject,omitempty"`
	Message *string `json:"message,omitempty"`
}

// Update validates a template edit. Templates are built into the service and
// the edit is not stored.
// @Summary Update template
// @Description Validate a template edit; templates are static so nothing is persisted
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Message kind"
// @Param template body UpdateTemplateRequest true "Update request"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/templates/{kind} [put]
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTemplateRequest
	if err := DecodeJSON(r, &req); err != nil {
		HandleError(w, err)
		return
	}

	kind := kindParam(r)
	if err := h.service.Update(kind, service.UpdateTemplateRequest{
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		HandleError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"kind":      kind,
		"persisted": false,
		"message":   "Template is valid; templates are static and the change was not stored",
	})
}
