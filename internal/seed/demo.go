// Package seed builds the demo data loaded by `mentorship seed`.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/store"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func field(title, desc string, typ models.FieldType, required bool, order int, options ...string) models.FormField {
	return models.FormField{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strp(desc),
		FieldType:   typ,
		Options:     options,
		IsRequired:  required,
		Order:       order,
	}
}

func user(name, email string, role models.Role, verified bool) models.User {
	return models.User{ID: uuid.NewString(), Name: name, Email: email, Role: role, EmailVerified: verified}
}

func enrollment(u models.User, p models.MentorshipProgram, status models.EnrollmentStatus, answers ...models.FormResponse) models.Enrollment {
	return models.Enrollment{
		ID:                  uuid.NewString(),
		UserID:              u.ID,
		MentorshipProgramID: p.ID,
		Status:              status,
		Responses:           answers,
	}
}

func text(f models.FormField, v string) models.FormResponse {
	return models.FormResponse{FormFieldID: f.ID, TextResponse: strp(v)}
}

func number(f models.FormField, v int) models.FormResponse {
	return models.FormResponse{FormFieldID: f.ID, NumberResponse: intp(v)}
}

func choice(f models.FormField, v string) models.FormResponse {
	return models.FormResponse{FormFieldID: f.ID, SelectResponse: strp(v)}
}

func choices(f models.FormField, v ...string) models.FormResponse {
	return models.FormResponse{FormFieldID: f.ID, MultiSelectResponse: v}
}

// Demo returns a small but complete data set: one superadmin, two admins,
// five applicants, four programs with forms and enrollments in every status.
// Ids are fresh on every call.
func Demo() *store.Dataset {
	super := user("Super Admin", "superadmin@mentorgain.com", models.RoleSuperadmin, true)
	alice := user("Alice Johnson", "alice@mentorgain.com", models.RoleAdmin, true)
	bob := user("Bob Smith", "bob@mentorgain.com", models.RoleAdmin, true)
	charlie := user("Charlie Brown", "charlie@example.com", models.RoleUser, true)
	diana := user("Diana Prince", "diana@example.com", models.RoleUser, true)
	edward := user("Edward Norton", "edward@example.com", models.RoleUser, false)
	fiona := user("Fiona Green", "fiona@example.com", models.RoleUser, true)
	george := user("George Wilson", "george@example.com", models.RoleUser, true)

	webFields := []models.FormField{
		field("Programming Experience", "How many years of programming experience do you have?", models.FieldTypeNumber, true, 1),
		field("Preferred Learning Style", "Select your preferred way of learning", models.FieldTypeSelect, true, 2,
			"Video tutorials", "Reading documentation", "Hands-on projects", "Pair programming"),
		field("Technologies Known", "Select all technologies you are familiar with", models.FieldTypeMultiSelect, false, 3,
			"HTML", "CSS", "JavaScript", "TypeScript", "React", "Vue", "Angular", "Node.js"),
		field("Goals", "What do you hope to achieve from this program?", models.FieldTypeText, true, 4),
		field("Resume", "Upload your resume (PDF format)", models.FieldTypeFile, false, 5),
	}
	dataFields := []models.FormField{
		field("Current Role", "What is your current job title?", models.FieldTypeText, true, 1),
		field("Python Proficiency", "How would you rate your Python skills?", models.FieldTypeSelect, true, 2,
			"Beginner", "Intermediate", "Advanced", "Expert"),
		field("Areas of Interest", "Which data science areas interest you most?", models.FieldTypeMultiSelect, true, 3,
			"Machine Learning", "Deep Learning", "Data Visualization", "NLP", "Computer Vision", "Statistics"),
	}
	cloudFields := []models.FormField{
		field("Cloud Experience", "Years of experience with cloud platforms", models.FieldTypeNumber, true, 1),
		field("Primary Cloud Platform", "Which cloud platform do you primarily use?", models.FieldTypeSelect, true, 2,
			"AWS", "Azure", "GCP", "None"),
		field("Certifications", "List any cloud certifications you have", models.FieldTypeText, false, 3),
	}
	leadFields := []models.FormField{
		field("Team Size", "How many people do you currently manage?", models.FieldTypeNumber, true, 1),
		field("Management Experience", "How many years of management experience do you have?", models.FieldTypeSelect, true, 2,
			"0-1 years", "1-3 years", "3-5 years", "5+ years"),
		field("Challenges", "What leadership challenges are you facing?", models.FieldTypeText, true, 3),
	}

	web := models.MentorshipProgram{
		ID:   uuid.NewString(),
		Name: "Web Development Bootcamp",
		Description: "A comprehensive 12-week program covering HTML, CSS, JavaScript, React, and Node.js. " +
			"Perfect for beginners looking to start a career in web development.",
		StartDate: date("2026-02-01"), EndDate: date("2026-04-30"),
		MaxParticipants: 20, Status: models.ProgramStatusOpen, CreatedBy: alice.ID,
		FormFields: webFields,
	}
	data := models.MentorshipProgram{
		ID:   uuid.NewString(),
		Name: "Data Science Fundamentals",
		Description: "Learn the basics of data science including Python, pandas, machine learning, and data visualization. " +
			"Ideal for analysts looking to level up.",
		StartDate: date("2026-03-15"), EndDate: date("2026-06-15"),
		MaxParticipants: 15, Status: models.ProgramStatusOpen, CreatedBy: alice.ID,
		FormFields: dataFields,
	}
	cloud := models.MentorshipProgram{
		ID:   uuid.NewString(),
		Name: "Cloud Architecture Mastery",
		Description: "Master AWS, Azure, and GCP fundamentals. " +
			"Learn to design scalable, reliable cloud infrastructure for enterprise applications.",
		StartDate: date("2026-01-10"), EndDate: date("2026-03-10"),
		MaxParticipants: 10, Status: models.ProgramStatusOpen, CreatedBy: bob.ID,
		FormFields: cloudFields,
	}
	lead := models.MentorshipProgram{
		ID:   uuid.NewString(),
		Name: "Leadership & Management",
		Description: "Develop essential leadership skills including communication, team management, " +
			"strategic thinking, and conflict resolution.",
		StartDate: date("2025-10-01"), EndDate: date("2025-12-31"),
		MaxParticipants: 25, Status: models.ProgramStatusClosed, CreatedBy: bob.ID,
		FormFields: leadFields,
	}

	return &store.Dataset{
		Users:    []models.User{super, alice, bob, charlie, diana, edward, fiona, george},
		Programs: []models.MentorshipProgram{web, data, cloud, lead},
		Enrollments: []models.Enrollment{
			enrollment(charlie, web, models.EnrollmentAccepted,
				number(webFields[0], 2),
				choice(webFields[1], "Hands-on projects"),
				choices(webFields[2], "HTML", "CSS", "JavaScript"),
				text(webFields[3], "I want to become a full-stack developer and build my own SaaS product."),
			),
			enrollment(diana, web, models.EnrollmentPending,
				number(webFields[0], 0),
				choice(webFields[1], "Video tutorials"),
				text(webFields[3], "Career transition from marketing to software development."),
			),
			enrollment(edward, web, models.EnrollmentRejected),
			enrollment(charlie, data, models.EnrollmentPending),
			enrollment(fiona, data, models.EnrollmentAccepted,
				text(dataFields[0], "Data Analyst"),
				choice(dataFields[1], "Intermediate"),
				choices(dataFields[2], "Machine Learning", "Data Visualization", "Statistics"),
			),
			enrollment(george, cloud, models.EnrollmentAccepted,
				number(cloudFields[0], 3),
				choice(cloudFields[1], "AWS"),
				text(cloudFields[2], "AWS Solutions Architect Associate, AWS Developer Associate"),
			),
			enrollment(diana, lead, models.EnrollmentAccepted,
				number(leadFields[0], 8),
				choice(leadFields[1], "3-5 years"),
				text(leadFields[2], "Struggling with remote team communication and maintaining team morale during challenging projects."),
			),
		},
	}
}
