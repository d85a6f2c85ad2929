package domain

import (
	"fmt"
	"regexp"
	"slices"
	"sort"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Template is a message body for one MessageKind
type Template struct {
	Kind      MessageKind `json:"kind"`
	Subject   string      `json:"subject"`
	Body      string      `json:"message"`
	Variables []string    `json:"variables"`

	// Optional maps a variable to the line it expands to when present. An
	// absent or empty value renders as an empty segment.
	Optional map[string]string `json:"optional,omitempty"`

	// Currency lists variables rendered as whole-number money amounts.
	Currency []string `json:"currency,omitempty"`
}

// variablePattern matches template variables like {variable_name}
var variablePattern = regexp.MustCompile(`\{(\w+)\}`)

var currencyPrinter = message.NewPrinter(language.English)

// NewTemplate creates a new template
func NewTemplate(kind MessageKind, subject, body string) *Template {
	t := &Template{
		Kind:    kind,
		Subject: subject,
		Body:    body,
	}
	t.ExtractVariables()
	return t
}

// ExtractVariables extracts variable names from the template body
func (t *Template) ExtractVariables() {
	t.Variables = placeholders(t.Body)
}

// Check verifies that every placeholder in the body is declared and every
// declared variable appears in the body.
func (t *Template) Check() error {
	found := placeholders(t.Body)
	declared := make(map[string]bool, len(t.Variables))
	for _, v := range t.Variables {
		declared[v] = true
	}

	for _, v := range found {
		if !declared[v] {
			return fmt.Errorf("template %s: placeholder {%s} not declared", t.Kind, v)
		}
		delete(declared, v)
	}
	if len(declared) > 0 {
		unused := make([]string, 0, len(declared))
		for v := range declared {
			unused = append(unused, v)
		}
		sort.Strings(unused)
		return fmt.Errorf("template %s: declared variables not in body: %v", t.Kind, unused)
	}

	for v := range t.Optional {
		if !slices.Contains(t.Variables, v) {
			return fmt.Errorf("template %s: optional variable %s not declared", t.Kind, v)
		}
	}
	for _, v := range t.Currency {
		if !slices.Contains(t.Variables, v) {
			return fmt.Errorf("template %s: currency variable %s not declared", t.Kind, v)
		}
	}
	return nil
}

// Render fills every placeholder from data. Missing values render as empty
// strings so a partially filled event still produces a message.
func (t *Template) Render(data EventData) string {
	return variablePattern.ReplaceAllStringFunc(t.Body, func(match string) string {
		name := match[1 : len(match)-1]
		value := t.value(name, data)
		if line, ok := t.Optional[name]; ok {
			if value == "" {
				return ""
			}
			return fmt.Sprintf(line, value)
		}
		return value
	})
}

// Missing returns the required variables absent from data. Optional
// variables are never reported.
func (t *Template) Missing(data EventData) []string {
	missing := make([]string, 0)
	for _, v := range t.Variables {
		if _, ok := t.Optional[v]; ok {
			continue
		}
		if raw, ok := data[v]; !ok || raw == nil {
			missing = append(missing, v)
		}
	}
	return missing
}

func (t *Template) value(name string, data EventData) string {
	raw, ok := data[name]
	if !ok || raw == nil {
		return ""
	}
	if slices.Contains(t.Currency, name) {
		return FormatCurrency(raw)
	}
	return DisplayValue(raw)
}

// DisplayValue converts an EventData value to the text shown to the recipient.
func DisplayValue(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// FormatCurrency renders a numeric amount with thousands separators and no
// decimals (50000 -> "50,000"). Non-numeric values such as "TBD" are shown as is.
func FormatCurrency(v any) string {
	amount, err := cast.ToFloat64E(v)
	if err != nil {
		return DisplayValue(v)
	}
	return currencyPrinter.Sprintf("%.0f", amount)
}

func placeholders(body string) []string {
	matches := variablePattern.FindAllStringSubmatch(body, -1)
	seen := make(map[string]bool)
	variables := make([]string, 0)

	for _, match := range matches {
		if len(match) > 1 && !seen[match[1]] {
			variables = append(variables, match[1])
			seen[match[1]] = true
		}
	}
	return variables
}
