package forms

import (
	"fmt"
	"path"
	"strings"

	"github.com/madhava-poojari/mentorship-api/internal/models"
)

// FilePrefix is the public path of stored uploads. File answers must point
// below it.
const FilePrefix = "/uploads/"

// Response is one submitted answer. Only the slot matching the field type may
// be set.
type Response struct {
	FormFieldID         string
	TextResponse        *string
	NumberResponse      *int
	SelectResponse      *string
	MultiSelectResponse []string
	FileResponse        *string
}

// ValidateResponses checks responses against the program's fields and returns
// the answers to persist. Responses to optional fields that carry no value are
// dropped. The returned rows have no EnrollmentID yet.
func ValidateResponses(fields []models.FormField, responses []Response) ([]models.FormResponse, error) {
	byID := make(map[string]models.FormField, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	answered := make(map[string]bool, len(responses))
	seen := make(map[string]struct{}, len(responses))
	out := make([]models.FormResponse, 0, len(responses))

	for _, r := range responses {
		field, ok := byID[r.FormFieldID]
		if !ok {
			return nil, &ValidationError{Message: fmt.Sprintf("unknown form field %s", r.FormFieldID)}
		}
		if _, dup := seen[r.FormFieldID]; dup {
			return nil, &ValidationError{Message: fmt.Sprintf("field %q answered more than once", field.Title)}
		}
		seen[r.FormFieldID] = struct{}{}

		row, has, err := checkResponse(field, r)
		if err != nil {
			return nil, err
		}
		if !has {
			continue
		}
		answered[field.ID] = true
		out = append(out, row)
	}

	sorted := append([]models.FormField(nil), fields...)
	SortFields(sorted)
	var missing []string
	for _, f := range sorted {
		if f.IsRequired && !answered[f.ID] {
			missing = append(missing, f.Title)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Message: "Missing required fields: " + strings.Join(missing, ", ")}
	}
	return out, nil
}

func checkResponse(field models.FormField, r Response) (models.FormResponse, bool, error) {
	row := models.FormResponse{FormFieldID: field.ID}

	if set := filledSlots(r); len(set) > 1 || (len(set) == 1 && set[0] != field.FieldType) {
		return row, false, &ValidationError{
			Message: fmt.Sprintf("field %q expects a %s response", field.Title, field.FieldType),
		}
	}

	switch field.FieldType {
	case models.FieldTypeText:
		if r.TextResponse == nil || strings.TrimSpace(*r.TextResponse) == "" {
			return row, false, nil
		}
		row.TextResponse = r.TextResponse
	case models.FieldTypeNumber:
		if r.NumberResponse == nil {
			return row, false, nil
		}
		row.NumberResponse = r.NumberResponse
	case models.FieldTypeSelect:
		if r.SelectResponse == nil || strings.TrimSpace(*r.SelectResponse) == "" {
			return row, false, nil
		}
		v := strings.TrimSpace(*r.SelectResponse)
		if !containsOption(field.Options, v) {
			return row, false, &ValidationError{Message: fmt.Sprintf("field %q: %q is not an allowed option", field.Title, v)}
		}
		row.SelectResponse = &v
	case models.FieldTypeMultiSelect:
		if len(r.MultiSelectResponse) == 0 {
			return row, false, nil
		}
		picked := make(map[string]struct{}, len(r.MultiSelectResponse))
		vals := make([]string, 0, len(r.MultiSelectResponse))
		for _, v := range r.MultiSelectResponse {
			v = strings.TrimSpace(v)
			if !containsOption(field.Options, v) {
				return row, false, &ValidationError{Message: fmt.Sprintf("field %q: %q is not an allowed option", field.Title, v)}
			}
			if _, dup := picked[v]; dup {
				return row, false, &ValidationError{Message: fmt.Sprintf("field %q: option %q selected twice", field.Title, v)}
			}
			picked[v] = struct{}{}
			vals = append(vals, v)
		}
		row.MultiSelectResponse = vals
	case models.FieldTypeFile:
		if r.FileResponse == nil || strings.TrimSpace(*r.FileResponse) == "" {
			return row, false, nil
		}
		v := strings.TrimSpace(*r.FileResponse)
		if !isStoredFilePath(v) {
			return row, false, &ValidationError{Message: fmt.Sprintf("field %q must reference an uploaded file", field.Title)}
		}
		row.FileResponse = &v
	default:
		return row, false, &ValidationError{Message: fmt.Sprintf("field %q has unsupported type %q", field.Title, field.FieldType)}
	}
	return row, true, nil
}

// isStoredFilePath reports whether v is a clean path below FilePrefix, as
// returned by the upload endpoint.
func isStoredFilePath(v string) bool {
	if !strings.HasPrefix(v, FilePrefix) || len(v) == len(FilePrefix) {
		return false
	}
	if strings.ContainsAny(v, "?#%\\ ") {
		return false
	}
	return path.Clean(v) == v
}

// filledSlots lists the field types whose value slot is present in r.
func filledSlots(r Response) []models.FieldType {
	var set []models.FieldType
	if r.TextResponse != nil {
		set = append(set, models.FieldTypeText)
	}
	if r.NumberResponse != nil {
		set = append(set, models.FieldTypeNumber)
	}
	if r.SelectResponse != nil {
		set = append(set, models.FieldTypeSelect)
	}
	if r.MultiSelectResponse != nil {
		set = append(set, models.FieldTypeMultiSelect)
	}
	if r.FileResponse != nil {
		set = append(set, models.FieldTypeFile)
	}
	return set
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
