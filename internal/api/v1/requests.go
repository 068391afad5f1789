package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/madhava-poojari/mentorship-api/internal/forms"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/service"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// report json names, not Go field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// formatValidationError turns the first validator failure into a message for
// the caller.
func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return "Field validation for '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
	}
	return err.Error()
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// parseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(field, v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s must be an RFC3339 date", field)
}

type googleSignInRequest struct {
	Code string `json:"code" validate:"required"`
}

func (r *googleSignInRequest) Validate() error { return getValidator().Struct(r) }

type fieldRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description *string          `json:"description"`
	FieldType   models.FieldType `json:"field_type" validate:"required,oneof=text number select multi_select file"`
	Options     []string         `json:"options"`
	IsRequired  bool             `json:"is_required"`
	Order       *int             `json:"order" validate:"omitempty,min=0"`
}

func (f fieldRequest) toNewField() service.NewField {
	return service.NewField{
		Definition: forms.FieldDefinition{
			Title:       f.Title,
			Description: f.Description,
			FieldType:   f.FieldType,
			Options:     f.Options,
			IsRequired:  f.IsRequired,
		},
		Order: f.Order,
	}
}

func toNewFields(in []fieldRequest) []service.NewField {
	out := make([]service.NewField, 0, len(in))
	for _, f := range in {
		out = append(out, f.toNewField())
	}
	return out
}

type createProgramRequest struct {
	Name            string         `json:"name" validate:"required"`
	Description     string         `json:"description" validate:"required"`
	StartDate       string         `json:"start_date" validate:"required"`
	EndDate         string         `json:"end_date" validate:"required"`
	MaxParticipants int            `json:"max_participants" validate:"required,min=1"`
	FormFields      []fieldRequest `json:"form_fields" validate:"omitempty,dive"`
}

func (r *createProgramRequest) Validate() error { return getValidator().Struct(r) }

func (r *createProgramRequest) toInput() (service.ProgramInput, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return service.ProgramInput{}, err
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return service.ProgramInput{}, err
	}
	return service.ProgramInput{
		Name:            r.Name,
		Description:     r.Description,
		StartDate:       start,
		EndDate:         end,
		MaxParticipants: r.MaxParticipants,
		FormFields:      toNewFields(r.FormFields),
	}, nil
}

// updateProgramRequest is a partial update. Inline form fields are managed
// through the form endpoints and ignored here.
type updateProgramRequest struct {
	Name            *string               `json:"name" validate:"omitempty,min=1"`
	Description     *string               `json:"description" validate:"omitempty,min=1"`
	StartDate       *string               `json:"start_date"`
	EndDate         *string               `json:"end_date"`
	MaxParticipants *int                  `json:"max_participants" validate:"omitempty,min=1"`
	Status          *models.ProgramStatus `json:"status" validate:"omitempty,oneof=open closed"`
}

func (r *updateProgramRequest) Validate() error { return getValidator().Struct(r) }

func (r *updateProgramRequest) toUpdate() (service.ProgramUpdate, error) {
	u := service.ProgramUpdate{
		Name:            r.Name,
		Description:     r.Description,
		MaxParticipants: r.MaxParticipants,
		Status:          r.Status,
	}
	if r.StartDate != nil {
		t, err := parseDate("start_date", *r.StartDate)
		if err != nil {
			return u, err
		}
		u.StartDate = &t
	}
	if r.EndDate != nil {
		t, err := parseDate("end_date", *r.EndDate)
		if err != nil {
			return u, err
		}
		u.EndDate = &t
	}
	return u, nil
}

type addFieldsRequest struct {
	Fields []fieldRequest `json:"fields" validate:"required,min=1,dive"`
}

func (r *addFieldsRequest) Validate() error { return getValidator().Struct(r) }

type updateFieldRequest struct {
	Title       *string           `json:"title" validate:"omitempty,min=1"`
	Description *string           `json:"description"`
	FieldType   *models.FieldType `json:"field_type" validate:"omitempty,oneof=text number select multi_select file"`
	Options     []string          `json:"options"`
	IsRequired  *bool             `json:"is_required"`
	Order       *int              `json:"order" validate:"omitempty,min=0"`
}

func (r *updateFieldRequest) Validate() error { return getValidator().Struct(r) }

func (r *updateFieldRequest) toUpdate() service.FieldUpdate {
	return service.FieldUpdate{
		Title:       r.Title,
		Description: r.Description,
		FieldType:   r.FieldType,
		Options:     r.Options,
		IsRequired:  r.IsRequired,
		Order:       r.Order,
	}
}

type responseRequest struct {
	FormFieldID         string   `json:"form_field_id" validate:"required,uuid"`
	TextResponse        *string  `json:"text_response"`
	NumberResponse      *int     `json:"number_response"`
	SelectResponse      *string  `json:"select_response"`
	MultiSelectResponse []string `json:"multi_select_response"`
	FileResponse        *string  `json:"file_response"`
}

type createEnrollmentRequest struct {
	MentorshipProgramID string            `json:"mentorship_program_id" validate:"required,uuid"`
	Responses           []responseRequest `json:"responses" validate:"omitempty,dive"`
}

func (r *createEnrollmentRequest) Validate() error { return getValidator().Struct(r) }

func (r *createEnrollmentRequest) toInput() service.EnrollmentInput {
	in := service.EnrollmentInput{
		ProgramID: r.MentorshipProgramID,
		Responses: make([]forms.Response, 0, len(r.Responses)),
	}
	for _, resp := range r.Responses {
		in.Responses = append(in.Responses, forms.Response{
			FormFieldID:         resp.FormFieldID,
			TextResponse:        resp.TextResponse,
			NumberResponse:      resp.NumberResponse,
			SelectResponse:      resp.SelectResponse,
			MultiSelectResponse: resp.MultiSelectResponse,
			FileResponse:        resp.FileResponse,
		})
	}
	return in
}

type changeRoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=user admin superadmin"`
}

func (r *changeRoleRequest) Validate() error { return getValidator().Struct(r) }

type bulkStatusRequest struct {
	EnrollmentIDs []string                `json:"enrollment_ids" validate:"required,min=1,dive,uuid"`
	Status        models.EnrollmentStatus `json:"status" validate:"required,oneof=pending accepted rejected"`
}

func (r *bulkStatusRequest) Validate() error { return getValidator().Struct(r) }
