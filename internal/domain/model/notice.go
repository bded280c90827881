package model

// NoticeKind selects how a notice is presented.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot message shown to the operator after an action.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Operator-facing notice texts.
const (
	TextUserAdded    = "Successfully Added"
	TextUserUpdated  = "Successfully Updated"
	TextUserDeleted  = "Successfully Deleted"
	TextListFailed   = "Failed to load users."
	TextDeleteFailed = "Failed to delete user."
	TextGenericError = "An error occurred"
	TextLoginFailed  = "Invalid username or password"
)
