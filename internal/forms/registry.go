// Package forms holds the static catalog of form templates and the
// schema-driven validator. The catalog is immutable; the admin surface works
// on a separate Workspace copy and never touches it.
package forms

import "time"

type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindPassword Kind = "password"
	KindTextarea Kind = "textarea"
	KindDate     Kind = "date"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
)

// FieldSpec describes one field of a template: how it renders, how it
// validates and how it serializes. Min/Message drive validation only and are
// not part of the JSON schema exposed to clients.
type FieldSpec struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Kind        Kind     `json:"type"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Span        bool     `json:"span,omitempty"`
	Options     []string `json:"options,omitempty"`

	Min     int    `json:"-"`
	Message string `json:"-"`
}

type Template struct {
	ID     string      `json:"value"`
	Label  string      `json:"label"`
	Icon   string      `json:"icon"`
	Fields []FieldSpec `json:"-"`
}

// Values is one validated submission, tagged with its originating template.
// Date fields hold time.Time, checkboxes bool, everything else string.
type Values struct {
	FormType string
	Data     map[string]any
}

const (
	passwordMsg = "Password must be at least 6 characters."
	emailMsg    = "Please enter a valid email address."
	phoneMsg    = "Please enter a valid mobile number."
)

func passwordField() FieldSpec {
	return FieldSpec{Name: "password", Label: "Password", Kind: KindPassword, Placeholder: "Enter a secure password", Required: true, Span: true, Min: 6, Message: passwordMsg}
}

var templates = []Template{
	{
		ID: "studentBio", Label: "Student Bio", Icon: "graduation-cap",
		Fields: []FieldSpec{
			passwordField(),
			{Name: "fullName", Label: "Full Name", Kind: KindText, Placeholder: "Santhosh A", Required: true, Min: 3, Message: "Full name is required"},
			{Name: "dob", Label: "Date of Birth", Kind: KindDate, Required: true, Message: "Date of birth is required."},
			{Name: "gender", Label: "Gender", Kind: KindRadio, Options: []string{"Male", "Female", "Other"}, Required: true, Message: "Please select a gender."},
			{Name: "phone", Label: "Phone Number", Kind: KindTel, Placeholder: "+91 9876543210", Required: true, Message: phoneMsg},
			{Name: "email", Label: "Email", Kind: KindEmail, Placeholder: "santhosh@example.com", Required: true, Message: emailMsg},
			{Name: "enrollmentNumber", Label: "Enrollment Number", Kind: KindText, Placeholder: "URK21CS100", Required: true, Min: 1, Message: "Enrollment number is required."},
			{Name: "courseDepartment", Label: "Course/Department", Kind: KindText, Placeholder: "B.Sc Computer Science", Required: true, Span: true, Min: 2, Message: "Course/Department is required."},
			{Name: "address", Label: "Address", Kind: KindTextarea, Placeholder: "123 Main St, City, Country", Required: true, Span: true, Min: 5, Message: "Address is required."},
		},
	},
	{
		ID: "jobApplication", Label: "Job Application", Icon: "briefcase",
		Fields: []FieldSpec{
			passwordField(),
			{Name: "fullName", Label: "Full Name", Kind: KindText, Placeholder: "Santhosh A", Required: true, Min: 3, Message: "Full name is required"},
			{Name: "email", Label: "Email", Kind: KindEmail, Placeholder: "santhosh@example.com", Required: true, Message: emailMsg},
			{Name: "phone", Label: "Phone Number", Kind: KindTel, Placeholder: "+91 9876543210", Required: true, Message: phoneMsg},
			{Name: "position", Label: "Position Applied For", Kind: KindText, Placeholder: "Software Engineer", Required: true, Min: 2, Message: "Position is required."},
			{Name: "experience", Label: "Experience (Years)", Kind: KindText, Placeholder: "5", Required: true, Min: 1, Message: "Experience is required"},
			{Name: "resumeAttached", Label: "Resume Attached", Kind: KindCheckbox},
			{Name: "skills", Label: "Skills", Kind: KindTextarea, Placeholder: "React, Node.js, TypeScript", Required: true, Span: true, Min: 5, Message: "Skills are required."},
			{Name: "coverLetter", Label: "Cover Letter", Kind: KindTextarea, Placeholder: "Your cover letter...", Span: true},
		},
	},
	{
		ID: "eventRegistration", Label: "Event Registration", Icon: "calendar",
		Fields: []FieldSpec{
			passwordField(),
			{Name: "name", Label: "Name", Kind: KindText, Placeholder: "Santhosh A", Required: true, Min: 3, Message: "Name is required"},
			{Name: "email", Label: "Email", Kind: KindEmail, Placeholder: "santhosh@example.com", Required: true, Message: emailMsg},
			{Name: "phone", Label: "Phone Number", Kind: KindTel, Placeholder: "+91 9876543210", Required: true, Message: phoneMsg},
			{Name: "eventName", Label: "Event Name", Kind: KindText, Placeholder: "Tech Conference 2024", Required: true, Min: 2, Message: "Event name is required."},
			{Name: "preferredSlot", Label: "Preferred Slot", Kind: KindText, Placeholder: "Morning Session", Required: true, Min: 2, Message: "Preferred slot is required."},
			{Name: "paymentMethod", Label: "Payment Method", Kind: KindRadio, Options: []string{"Online", "Offline"}, Required: true, Message: "Please select a payment method."},
		},
	},
	{
		ID: "contactForm", Label: "Contact Form", Icon: "message-square",
		Fields: []FieldSpec{
			passwordField(),
			{Name: "name", Label: "Name", Kind: KindText, Placeholder: "Santhosh A", Required: true, Min: 3, Message: "Name is required"},
			{Name: "email", Label: "Email", Kind: KindEmail, Placeholder: "santhosh@example.com", Required: true, Message: emailMsg},
			{Name: "phone", Label: "Phone Number", Kind: KindTel, Placeholder: "+91 9876543210", Required: true, Message: phoneMsg},
			{Name: "subject", Label: "Subject", Kind: KindText, Placeholder: "Inquiry about your services", Required: true, Span: true, Min: 2, Message: "Subject is required."},
			{Name: "message", Label: "Message", Kind: KindTextarea, Placeholder: "Your message...", Required: true, Span: true, Min: 10, Message: "Message must be at least 10 characters."},
		},
	},
	{
		ID: "collegeAdmission", Label: "College Admission", Icon: "building",
		Fields: []FieldSpec{
			passwordField(),
			{Name: "fullName", Label: "Full Name", Kind: KindText, Placeholder: "Santhosh A", Required: true, Min: 3, Message: "Full name is required"},
			{Name: "dob", Label: "Date of Birth", Kind: KindDate, Required: true, Message: "Date of birth is required."},
			{Name: "gender", Label: "Gender", Kind: KindRadio, Options: []string{"Male", "Female", "Other"}, Required: true, Message: "Please select a gender."},
			{Name: "fatherName", Label: "Father's Name", Kind: KindText, Placeholder: "Father's Name", Required: true, Min: 3, Message: "Father's name is required."},
			{Name: "motherName", Label: "Mother's Name", Kind: KindText, Placeholder: "Mother's Name", Required: true, Min: 3, Message: "Mother's name is required."},
			{Name: "phone", Label: "Phone Number", Kind: KindTel, Placeholder: "+91 9876543210", Required: true, Message: phoneMsg},
			{Name: "email", Label: "Email", Kind: KindEmail, Placeholder: "santhosh@example.com", Required: true, Message: emailMsg},
			{Name: "courseApplied", Label: "Course Applied", Kind: KindText, Placeholder: "B.Tech Computer Science", Required: true, Min: 2, Message: "Course applied for is required."},
			{Name: "prevQualification", Label: "Previous Qualification", Kind: KindText, Placeholder: "12th Grade / High School", Required: true, Min: 2, Message: "Previous qualification is required."},
			{Name: "marks", Label: "Marks Obtained (%)", Kind: KindText, Placeholder: "95", Required: true, Min: 1, Message: "Marks are required."},
			{Name: "address", Label: "Address", Kind: KindTextarea, Placeholder: "123 Main St, City, Country", Required: true, Span: true, Min: 5, Message: "Address is required."},
		},
	},
}

// Registry is the canonical, immutable template catalog.
type Registry struct{}

func NewRegistry() *Registry { return &Registry{} }

func (*Registry) Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

func (*Registry) Lookup(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

func (r *Registry) Schema(id string) ([]FieldSpec, bool) {
	t, ok := r.Lookup(id)
	if !ok {
		return nil, false
	}
	fields := make([]FieldSpec, len(t.Fields))
	copy(fields, t.Fields)
	return fields, true
}

// Defaults returns the empty-value skeleton for one template: empty strings,
// unchecked booleans, no date.
func (r *Registry) Defaults(id string) (map[string]any, bool) {
	t, ok := r.Lookup(id)
	if !ok {
		return nil, false
	}
	defaults := make(map[string]any, len(t.Fields))
	for _, f := range t.Fields {
		switch f.Kind {
		case KindCheckbox:
			defaults[f.Name] = false
		case KindDate:
			defaults[f.Name] = nil
		default:
			defaults[f.Name] = ""
		}
	}
	return defaults, true
}

// Label resolves a template id to its display label, "Unknown" outside the set.
func Label(id string) string {
	for _, t := range templates {
		if t.ID == id {
			return t.Label
		}
	}
	return "Unknown"
}

// Lookup is the package-level shortcut used by the serializer.
func Lookup(id string) (Template, bool) { return (&Registry{}).Lookup(id) }

// dateLayouts accepted for raw date input.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}
