// Package forms holds the dynamic application form model: typed field
// definitions owned by a program and the responses applicants submit
// against them.
package forms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/madhava-poojari/mentorship-api/internal/models"
)

// FieldDefinition is the editable shape of a form field.
type FieldDefinition struct {
	Title       string
	Description *string
	FieldType   models.FieldType
	Options     []string
	IsRequired  bool
	Order       int
}

// Normalize trims the definition and checks it is self-consistent. Options
// are kept only for select and multi_select fields.
func (d *FieldDefinition) Normalize() error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return &ValidationError{Message: "field title is required"}
	}
	if !d.FieldType.Valid() {
		return &ValidationError{Message: fmt.Sprintf("field %q: invalid field type %q", d.Title, d.FieldType)}
	}
	if d.Order < 0 {
		return &ValidationError{Message: fmt.Sprintf("field %q: order must not be negative", d.Title)}
	}
	if d.Description != nil {
		desc := strings.TrimSpace(*d.Description)
		d.Description = &desc
	}

	if !d.FieldType.HasOptions() {
		d.Options = nil
		return nil
	}
	if len(d.Options) == 0 {
		return &ValidationError{Message: fmt.Sprintf("field %q: %s fields need at least one option", d.Title, d.FieldType)}
	}
	seen := make(map[string]struct{}, len(d.Options))
	opts := make([]string, 0, len(d.Options))
	for _, o := range d.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return &ValidationError{Message: fmt.Sprintf("field %q: options must not be blank", d.Title)}
		}
		if _, dup := seen[o]; dup {
			return &ValidationError{Message: fmt.Sprintf("field %q: duplicate option %q", d.Title, o)}
		}
		seen[o] = struct{}{}
		opts = append(opts, o)
	}
	d.Options = opts
	return nil
}

// ToModel builds the persisted field for programID.
func (d FieldDefinition) ToModel(programID string) models.FormField {
	return models.FormField{
		MentorshipProgramID: programID,
		Title:               d.Title,
		Description:         d.Description,
		FieldType:           d.FieldType,
		Options:             d.Options,
		IsRequired:          d.IsRequired,
		Order:               d.Order,
	}
}

// DefinitionOf returns the editable definition of an existing field.
func DefinitionOf(f models.FormField) FieldDefinition {
	return FieldDefinition{
		Title:       f.Title,
		Description: f.Description,
		FieldType:   f.FieldType,
		Options:     append([]string(nil), f.Options...),
		IsRequired:  f.IsRequired,
		Order:       f.Order,
	}
}

// SortFields orders fields by their order value, oldest first on ties.
func SortFields(fields []models.FormField) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Order != fields[j].Order {
			return fields[i].Order < fields[j].Order
		}
		return fields[i].CreatedAt.Before(fields[j].CreatedAt)
	})
}

// NextOrder is the order value to use after the existing fields.
func NextOrder(fields []models.FormField) int {
	next := 0
	for _, f := range fields {
		if f.Order+1 > next {
			next = f.Order + 1
		}
	}
	return next
}
