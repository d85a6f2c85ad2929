// Package catalog holds the fixed message templates, one per templated
// MessageKind.
package catalog

import (
	"fmt"
	"maps"

	"github.com/victorsprings/notification-service/internal/domain"
)

// Settings are the global values every template may reference
type Settings struct {
	SupportPhone string `json:"support_phone"`
	WebsiteURL   string `json:"website_url"`
	CompanyName  string `json:"company_name"`
}

func (s Settings) data() domain.EventData {
	return domain.EventData{
		"support_phone": s.SupportPhone,
		"website_url":   s.WebsiteURL,
		"company_name":  s.CompanyName,
	}
}

// Catalog is immutable after New and safe for concurrent use
type Catalog struct {
	settings  Settings
	templates map[domain.MessageKind]*domain.Template
}

// New builds the catalog and panics if any template is inconsistent or a
// templated kind has no template.
func New(settings Settings) *Catalog {
	c := &Catalog{
		settings:  settings,
		templates: make(map[domain.MessageKind]*domain.Template, len(domain.TemplatedKinds)),
	}

	for _, t := range defaults() {
		if err := t.Check(); err != nil {
			panic(err)
		}
		c.templates[t.Kind] = t
	}
	for _, kind := range domain.TemplatedKinds {
		if _, ok := c.templates[kind]; !ok {
			panic(fmt.Sprintf("catalog: no template for %s", kind))
		}
	}
	return c
}

// Settings returns the global template values
func (c *Catalog) Settings() Settings {
	return c.settings
}

// Get returns the template for kind
func (c *Catalog) Get(kind domain.MessageKind) (*domain.Template, error) {
	t, ok := c.templates[kind]
	if !ok {
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, kind)
	}
	return t, nil
}

// List returns every template in TemplatedKinds order
func (c *Catalog) List() []*domain.Template {
	out := make([]*domain.Template, 0, len(domain.TemplatedKinds))
	for _, kind := range domain.TemplatedKinds {
		out = append(out, c.templates[kind])
	}
	return out
}

// Render fills the template for kind. Caller data overrides the global
// settings. KindCustom has no template and yields ErrTemplateNotFound.
func (c *Catalog) Render(kind domain.MessageKind, data domain.EventData) (string, error) {
	t, err := c.Get(kind)
	if err != nil {
		return "", err
	}

	merged := c.settings.data()
	maps.Copy(merged, data)
	return t.Render(merged), nil
}

// Missing returns the required variables of kind's template that neither data
// nor the global settings supply.
func (c *Catalog) Missing(kind domain.MessageKind, data domain.EventData) ([]string, error) {
	t, err := c.Get(kind)
	if err != nil {
		return nil, err
	}

	merged := c.settings.data()
	maps.Copy(merged, data)
	return t.Missing(merged), nil
}
