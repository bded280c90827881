package model

// ModalKind identifies which record-management modal is open.
type ModalKind string

const (
	ModalClosed ModalKind = ""
	ModalCreate ModalKind = "create"
	ModalUpdate ModalKind = "update"
	ModalDelete ModalKind = "delete"
)

// ParseModalKind maps a query value onto a ModalKind. Unknown values map to
// ModalClosed.
func ParseModalKind(s string) ModalKind {
	switch ModalKind(s) {
	case ModalCreate, ModalUpdate, ModalDelete:
		return ModalKind(s)
	default:
		return ModalClosed
	}
}

// FormState is the transient state of the dashboard's modal and its form.
// The zero value is the closed state.
type FormState struct {
	Modal    ModalKind
	UserID   string
	Fullname string
	Username string
	Password string
	Errors   map[string]string
}

// IsOpen reports whether any modal is showing.
func (s FormState) IsOpen() bool {
	return s.Modal != ModalClosed
}

// FieldError returns the validation message for a field, or "".
func (s FormState) FieldError(field string) string {
	return s.Errors[field]
}

// Input returns the form's fields as a create/update payload.
func (s FormState) Input() UserInput {
	return UserInput{Fullname: s.Fullname, Username: s.Username, Password: s.Password}
}

// EventKind enumerates the transitions of the modal state machine.
type EventKind int

const (
	EventOpenCreate EventKind = iota
	EventOpenUpdate
	EventOpenDelete
	EventCancel
	// EventRejected is a 422 from the backend; Fields carries the messages.
	EventRejected
	// EventFailed is any other submit failure; the modal stays as it was.
	EventFailed
	EventSucceeded
)

// Event drives a FormState transition.
type Event struct {
	Kind   EventKind
	User   User
	Input  UserInput
	Fields map[string]string
}

// Reduce applies e to s and returns the next state. Events that do not apply
// to the current state leave it unchanged.
func Reduce(s FormState, e Event) FormState {
	switch e.Kind {
	case EventOpenCreate:
		if s.IsOpen() {
			return s
		}
		return FormState{Modal: ModalCreate}

	case EventOpenUpdate:
		if s.IsOpen() {
			return s
		}
		return FormState{
			Modal:    ModalUpdate,
			UserID:   e.User.ID,
			Fullname: e.User.Fullname,
			Username: e.User.Username,
		}

	case EventOpenDelete:
		if s.IsOpen() {
			return s
		}
		return FormState{Modal: ModalDelete, UserID: e.User.ID, Username: e.User.Username}

	case EventCancel, EventSucceeded:
		if !s.IsOpen() {
			return s
		}
		return FormState{}

	case EventRejected:
		if s.Modal != ModalCreate && s.Modal != ModalUpdate {
			return s
		}
		next := withInput(s, e.Input)
		next.Errors = copyFields(e.Fields)
		return next

	case EventFailed:
		if s.Modal != ModalCreate && s.Modal != ModalUpdate {
			return s
		}
		return withInput(s, e.Input)
	}

	return s
}

// withInput keeps the submitted values so the operator can correct them.
// The password is dropped; it is never echoed back into a rendered form.
func withInput(s FormState, in UserInput) FormState {
	s.Fullname = in.Fullname
	s.Username = in.Username
	s.Password = ""
	return s
}

func copyFields(fields map[string]string) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
