package service

import (
	"log/slog"
	"strings"

	"github.com/victorsprings/notification-service/internal/catalog"
	"github.com/victorsprings/notification-service/internal/domain"
)

// TemplateCatalog is the read side of the message template catalog
type TemplateCatalog interface {
	Get(kind domain.MessageKind) (*domain.Template, error)
	List() []*domain.Template
	Render(kind domain.MessageKind, data domain.EventData) (string, error)
	Missing(kind domain.MessageKind, data domain.EventData) ([]string, error)
	Settings() catalog.Settings
}

// TemplateService exposes the static template catalog
type TemplateService struct {
	catalog TemplateCatalog
	logger  *slog.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(catalog TemplateCatalog, logger *slog.Logger) *TemplateService {
	return &TemplateService{
		catalog: catalog,
		logger:  logger,
	}
}

// UpdateTemplateRequest represents a request to update a template
type UpdateTemplateRequest struct {
	Subject *string `json:"subject"`
	Message *string `json:"message"`
}

// Preview is a rendered template plus the required values the caller left out
type Preview struct {
	Kind    domain.MessageKind `json:"kind"`
	Subject string             `json:"subject"`
	Text    string             `json:"text"`
	Missing []string           `json:"missing"`
}

// List retrieves all templates
func (s *TemplateService) List() []*domain.Template {
	return s.catalog.List()
}

// Get retrieves the template for kind
func (s *TemplateService) Get(kind domain.MessageKind) (*domain.Template, error) {
	return s.catalog.Get(kind)
}

// Render renders kind with data without sending anything
func (s *TemplateService) Render(kind domain.MessageKind, data domain.EventData) (*Preview, error) {
	tmpl, err := s.catalog.Get(kind)
	if err != nil {
		return nil, err
	}
	text, err := s.catalog.Render(kind, data)
	if err != nil {
		return nil, err
	}
	missing, err := s.catalog.Missing(kind, data)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Kind:    kind,
		Subject: tmpl.Subject,
		Text:    text,
		Missing: missing,
	}, nil
}

// Update checks an edit request against an existing template. Templates are
// compiled into the binary, so nothing is stored.
func (s *TemplateService) Update(kind domain.MessageKind, req UpdateTemplateRequest) error {
	if _, err := s.catalog.Get(kind); err != nil {
		return err
	}

	var errs []domain.ValidationError
	if req.Subject == nil || strings.TrimSpace(*req.Subject) == "" {
		errs = append(errs, domain.NewValidationError("subject", "Missing required field: subject"))
	}
	if req.Message == nil || strings.TrimSpace(*req.Message) == "" {
		errs = append(errs, domain.NewValidationError("message", "Missing required field: message"))
	}
	if len(errs) > 0 {
		return domain.ValidationErrors{Errors: errs}
	}

	s.logger.Warn("template update accepted but not persisted", "kind", kind)
	return nil
}

// Settings returns the global values merged into every template
func (s *TemplateService) Settings() catalog.Settings {
	return s.catalog.Settings()
}
