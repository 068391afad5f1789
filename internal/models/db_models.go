package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Role          Role      `gorm:"type:text;not null;default:user;index" json:"role"`
	EmailVerified bool      `gorm:"default:false;not null" json:"email_verified"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Enrollments     []Enrollment        `gorm:"foreignKey:UserID" json:"enrollments,omitempty"`
	CreatedPrograms []MentorshipProgram `gorm:"foreignKey:CreatedBy" json:"created_programs,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type RefreshToken struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;index" json:"user_id"`
	TokenHash string    `gorm:"not null;index" json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}

type MentorshipProgram struct {
	ID              string        `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string        `gorm:"not null" json:"name"`
	Description     string        `gorm:"type:text;not null" json:"description"`
	StartDate       time.Time     `gorm:"not null" json:"start_date"`
	EndDate         time.Time     `gorm:"not null" json:"end_date"`
	MaxParticipants int           `gorm:"not null" json:"max_participants"`
	Status          ProgramStatus `gorm:"type:text;not null;default:open;index" json:"status"`
	CreatedBy       string        `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Creator     *User        `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	FormFields  []FormField  `gorm:"foreignKey:MentorshipProgramID" json:"form_fields,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:MentorshipProgramID" json:"enrollments,omitempty"`

	// filled by the store on reads
	EnrollmentCount int64 `gorm:"-" json:"enrollment_count"`
	AcceptedCount   int64 `gorm:"-" json:"accepted_count"`
}

func (MentorshipProgram) TableName() string { return "mentorship_programs" }

func (p *MentorshipProgram) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type FormField struct {
	ID                  string         `gorm:"type:uuid;primaryKey" json:"id"`
	MentorshipProgramID string         `gorm:"type:uuid;not null;index" json:"mentorship_program_id"`
	Title               string         `gorm:"not null" json:"title"`
	Description         *string        `gorm:"type:text" json:"description,omitempty"`
	FieldType           FieldType      `gorm:"type:text;not null" json:"field_type"`
	Options             pq.StringArray `gorm:"type:text[]" json:"options,omitempty"`
	IsRequired          bool           `gorm:"default:false;not null" json:"is_required"`
	Order               int            `gorm:"column:order;not null" json:"order"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	MentorshipProgram *MentorshipProgram `gorm:"foreignKey:MentorshipProgramID" json:"-"`
}

func (f *FormField) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

type Enrollment struct {
	ID                  string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              string           `gorm:"type:uuid;not null;uniqueIndex:enrollment_user_program_unique;index" json:"user_id"`
	MentorshipProgramID string           `gorm:"type:uuid;not null;uniqueIndex:enrollment_user_program_unique;index" json:"mentorship_program_id"`
	Status              EnrollmentStatus `gorm:"type:text;not null;default:pending;index" json:"status"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`

	User              *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	MentorshipProgram *MentorshipProgram `gorm:"foreignKey:MentorshipProgramID" json:"mentorship_program,omitempty"`
	Responses         []FormResponse     `gorm:"foreignKey:EnrollmentID" json:"responses,omitempty"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type FormResponse struct {
	ID                  string         `gorm:"type:uuid;primaryKey" json:"id"`
	EnrollmentID        string         `gorm:"type:uuid;not null;uniqueIndex:form_response_enrollment_field_unique;index" json:"enrollment_id"`
	FormFieldID         string         `gorm:"type:uuid;not null;uniqueIndex:form_response_enrollment_field_unique" json:"form_field_id"`
	TextResponse        *string        `gorm:"type:text" json:"text_response,omitempty"`
	NumberResponse      *int           `json:"number_response,omitempty"`
	SelectResponse      *string        `json:"select_response,omitempty"`
	MultiSelectResponse pq.StringArray `gorm:"type:text[]" json:"multi_select_response,omitempty"`
	FileResponse        *string        `json:"file_response,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	FormField *FormField `gorm:"foreignKey:FormFieldID" json:"form_field,omitempty"`
}

func (r *FormResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// AuditEntry records a privileged mutation. Details holds action-specific context.
type AuditEntry struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    string            `gorm:"type:uuid;index" json:"actor_id"`
	Action     string            `gorm:"not null;index" json:"action"`
	TargetType string            `gorm:"not null" json:"target_type"`
	TargetID   string            `gorm:"not null;index" json:"target_id"`
	Details    datatypes.JSONMap `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt  time.Time         `gorm:"index" json:"created_at"`
}
