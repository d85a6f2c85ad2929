package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	body := "Hello {name}, welcome to {company}!"

	tmpl := NewTemplate(KindWelcome, "Welcome", body)

	assert.NotNil(t, tmpl)
	assert.Equal(t, KindWelcome, tmpl.Kind)
	assert.Equal(t, "Welcome", tmpl.Subject)
	assert.Equal(t, body, tmpl.Body)
	assert.Equal(t, []string{"name", "company"}, tmpl.Variables)
	assert.NoError(t, tmpl.Check())
}

func TestTemplate_ExtractVariables(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantVars []string
	}{
		{
			name:     "single variable",
			body:     "Hello {name}!",
			wantVars: []string{"name"},
		},
		{
			name:     "multiple variables keep order",
			body:     "Hello {name}, your code is {code}",
			wantVars: []string{"name", "code"},
		},
		{
			name:     "duplicate variables",
			body:     "{name} said hello to {name}",
			wantVars: []string{"name"},
		},
		{
			name:     "no variables",
			body:     "Hello World!",
			wantVars: []string{},
		},
		{
			name:     "underscore in variable name",
			body:     "Hello {first_name} {last_name}",
			wantVars: []string{"first_name", "last_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := &Template{Body: tt.body}
			tmpl.ExtractVariables()
			assert.Equal(t, tt.wantVars, tmpl.Variables)
		})
	}
}

func TestTemplate_Check(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    Template
		wantErr string
	}{
		{
			name: "consistent",
			tmpl: Template{Kind: KindWelcome, Body: "Hi {name}", Variables: []string{"name"}},
		},
		{
			name:    "undeclared placeholder",
			tmpl:    Template{Kind: KindWelcome, Body: "Hi {name} {code}", Variables: []string{"name"}},
			wantErr: "placeholder {code} not declared",
		},
		{
			name:    "declared but unused",
			tmpl:    Template{Kind: KindWelcome, Body: "Hi {name}", Variables: []string{"name", "code"}},
			wantErr: "declared variables not in body: [code]",
		},
		{
			name: "optional not declared",
			tmpl: Template{
				Kind:      KindWelcome,
				Body:      "Hi {name}",
				Variables: []string{"name"},
				Optional:  map[string]string{"notes": "%s"},
			},
			wantErr: "optional variable notes not declared",
		},
		{
			name: "currency not declared",
			tmpl: Template{
				Kind:      KindWelcome,
				Body:      "Hi {name}",
				Variables: []string{"name"},
				Currency:  []string{"price"},
			},
			wantErr: "currency variable price not declared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tmpl.Check()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTemplate_Render(t *testing.T) {
	tests := []struct {
		name string
		tmpl Template
		data EventData
		want string
	}{
		{
			name: "render single variable",
			tmpl: Template{Body: "Hello {name}!"},
			data: EventData{"name": "John"},
			want: "Hello John!",
		},
		{
			name: "render with missing variable",
			tmpl: Template{Body: "Hello {name}, {greeting}"},
			data: EventData{"name": "John"},
			want: "Hello John, ",
		},
		{
			name: "nil value renders empty",
			tmpl: Template{Body: "Hello {name}."},
			data: EventData{"name": nil},
			want: "Hello .",
		},
		{
			name: "render duplicate variables",
			tmpl: Template{Body: "{name} said hello to {name}"},
			data: EventData{"name": "John"},
			want: "John said hello to John",
		},
		{
			name: "numbers are stringified",
			tmpl: Template{Body: "Units left: {count}"},
			data: EventData{"count": 3},
			want: "Units left: 3",
		},
		{
			name: "currency int",
			tmpl: Template{Body: "KES {price}", Currency: []string{"price"}},
			data: EventData{"price": 50000},
			want: "KES 50,000",
		},
		{
			name: "currency float rounds to whole units",
			tmpl: Template{Body: "KES {price}", Currency: []string{"price"}},
			data: EventData{"price": 1234567.6},
			want: "KES 1,234,568",
		},
		{
			name: "currency numeric string",
			tmpl: Template{Body: "KES {price}", Currency: []string{"price"}},
			data: EventData{"price": "75000"},
			want: "KES 75,000",
		},
		{
			name: "currency non numeric passes through",
			tmpl: Template{Body: "KES {price}", Currency: []string{"price"}},
			data: EventData{"price": "TBD"},
			want: "KES TBD",
		},
		{
			name: "optional present",
			tmpl: Template{
				Body:     "Visit booked.{notes}\nThanks",
				Optional: map[string]string{"notes": "\nNotes: %s"},
			},
			data: EventData{"notes": "bring ID"},
			want: "Visit booked.\nNotes: bring ID\nThanks",
		},
		{
			name: "optional empty",
			tmpl: Template{
				Body:     "Visit booked.{notes}\nThanks",
				Optional: map[string]string{"notes": "\nNotes: %s"},
			},
			data: EventData{"notes": ""},
			want: "Visit booked.\nThanks",
		},
		{
			name: "optional absent",
			tmpl: Template{
				Body:     "Visit booked.{notes}\nThanks",
				Optional: map[string]string{"notes": "\nNotes: %s"},
			},
			data: EventData{},
			want: "Visit booked.\nThanks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tmpl.Render(tt.data))
		})
	}
}

func TestTemplate_Missing(t *testing.T) {
	tmpl := Template{
		Body:      "Hello {name}, your code is {code}.{notes}",
		Variables: []string{"name", "code", "notes"},
		Optional:  map[string]string{"notes": " %s"},
	}

	tests := []struct {
		name        string
		data        EventData
		wantMissing []string
	}{
		{"all provided", EventData{"name": "John", "code": "123456"}, []string{}},
		{"missing one", EventData{"name": "John"}, []string{"code"}},
		{"missing all", EventData{}, []string{"name", "code"}},
		{"nil counts as missing", EventData{"name": nil, "code": "1"}, []string{"name"}},
		{"extra ignored", EventData{"name": "J", "code": "1", "extra": "x"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMissing, tmpl.Missing(tt.data))
		})
	}
}
