// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// NoticeViewModel is a one-shot message rendered above the user table.
type NoticeViewModel struct {
	Kind string
	Text string
}

// LoginPageViewModel holds everything the login form needs.
type LoginPageViewModel struct {
	Username    string
	Error       string
	CSRFToken   string
	RegisterURL string
}

// UserRowViewModel holds one row of the user table.
type UserRowViewModel struct {
	ID         string
	Username   string
	Fullname   string
	ReadPath   string
	UpdatePath string
	DeletePath string
}

// FeatureCardViewModel is one of the dashboard's welcome cards. BodyHTML is
// already sanitized.
type FeatureCardViewModel struct {
	Title    string
	BodyHTML string
}

// FieldViewModel is one input of the record form.
type FieldViewModel struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Error    string
	Required bool
}

// ModalViewModel describes the single open modal, if any.
type ModalViewModel struct {
	Kind        string
	Title       string
	Action      string
	SubmitLabel string
	Fields      []FieldViewModel

	// FormErrors are validation messages for fields the form does not show.
	FormErrors []string

	// Delete confirmation only.
	Username string
}

// IsConfirm reports whether the modal is the delete confirmation dialog.
func (m ModalViewModel) IsConfirm() bool {
	return m.Kind == "delete"
}

// DashboardViewModel holds the full dashboard page.
type DashboardViewModel struct {
	Username  string
	CSRFToken string
	Notices   []NoticeViewModel
	Cards     []FeatureCardViewModel
	Users     []UserRowViewModel
	Modal     *ModalViewModel
}
