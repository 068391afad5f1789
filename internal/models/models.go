package models

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may manage programs and review applications.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

type ProgramStatus string

const (
	ProgramStatusOpen   ProgramStatus = "open"
	ProgramStatusClosed ProgramStatus = "closed"
)

type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multi_select"
	FieldTypeFile        FieldType = "file"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeSelect, FieldTypeMultiSelect, FieldTypeFile:
		return true
	}
	return false
}

// HasOptions reports whether fields of this type choose from a fixed option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiSelect
}

type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentAccepted EnrollmentStatus = "accepted"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentAccepted, EnrollmentRejected:
		return true
	}
	return false
}

// Audit actions recorded for privileged mutations.
const (
	AuditRoleChanged       = "user.role_changed"
	AuditUserDeleted       = "user.deleted"
	AuditProgramClosed     = "program.force_closed"
	AuditProgramDeleted    = "program.deleted"
	AuditEnrollmentDecided = "enrollment.status_changed"
)

type UserStats struct {
	Total       int64 `json:"total"`
	Admins      int64 `json:"admins"`
	Superadmins int64 `json:"superadmins"`
}

type ProgramStats struct {
	Total  int64 `json:"total"`
	Open   int64 `json:"open"`
	Closed int64 `json:"closed"`
}

type EnrollmentStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

type PlatformStats struct {
	Users       UserStats       `json:"users"`
	Programs    ProgramStats    `json:"programs"`
	Enrollments EnrollmentStats `json:"enrollments"`
}
