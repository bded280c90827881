package web

import (
	"net/url"
	"sort"

	vm "github.com/ericfisherdev/hotelhub/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

// toUserRowViewModels converts domain Users to table rows.
func toUserRowViewModels(users []model.User) []vm.UserRowViewModel {
	rows := make([]vm.UserRowViewModel, 0, len(users))
	for _, u := range users {
		id := url.QueryEscape(u.ID)
		rows = append(rows, vm.UserRowViewModel{
			ID:         u.ID,
			Username:   u.Username,
			Fullname:   u.Fullname,
			ReadPath:   "/dashboard?modal=update&id=" + id,
			UpdatePath: "/dashboard?modal=update&id=" + id,
			DeletePath: "/dashboard?modal=delete&id=" + id,
		})
	}
	return rows
}

// toNoticeViewModels converts notices, sanitizing backend-provided text.
func toNoticeViewModels(notices []model.Notice) []vm.NoticeViewModel {
	vms := make([]vm.NoticeViewModel, 0, len(notices))
	for _, n := range notices {
		vms = append(vms, vm.NoticeViewModel{Kind: string(n.Kind), Text: SanitizeText(n.Text)})
	}
	return vms
}

// toModalViewModel converts the form state into the open modal, or nil when
// the state is closed.
func toModalViewModel(form model.FormState) *vm.ModalViewModel {
	switch form.Modal {
	case model.ModalCreate:
		return &vm.ModalViewModel{
			Kind:        string(model.ModalCreate),
			Title:       "Create User",
			Action:      "/users",
			SubmitLabel: "Create User",
			Fields:      toFieldViewModels(form),
			FormErrors:  unmatchedFieldErrors(form),
		}
	case model.ModalUpdate:
		return &vm.ModalViewModel{
			Kind:        string(model.ModalUpdate),
			Title:       "Update User",
			Action:      "/users/" + url.PathEscape(form.UserID),
			SubmitLabel: "Update User",
			Fields:      toFieldViewModels(form),
			FormErrors:  unmatchedFieldErrors(form),
		}
	case model.ModalDelete:
		return &vm.ModalViewModel{
			Kind:        string(model.ModalDelete),
			Title:       "Are you sure?",
			Action:      "/users/" + url.PathEscape(form.UserID) + "/delete",
			SubmitLabel: "Yes, delete it!",
			Username:    form.Username,
		}
	default:
		return nil
	}
}

// toFieldViewModels builds the record form inputs. The password is required
// only when creating and is never prefilled.
func toFieldViewModels(form model.FormState) []vm.FieldViewModel {
	return []vm.FieldViewModel{
		{
			Name: "fullname", Label: "Fullname", Type: "text", Required: true,
			Value: form.Fullname, Error: SanitizeText(form.FieldError("fullname")),
		},
		{
			Name: "username", Label: "Username", Type: "text", Required: true,
			Value: form.Username, Error: SanitizeText(form.FieldError("username")),
		},
		{
			Name: "password", Label: "Password", Type: "password", Required: form.Modal == model.ModalCreate,
			Error: SanitizeText(form.FieldError("password")),
		},
	}
}

// formFields are the inputs rendered in the record form.
var formFields = map[string]bool{"fullname": true, "username": true, "password": true}

// unmatchedFieldErrors returns messages keyed by fields the form has no input
// for, as "field: message", sorted by field.
func unmatchedFieldErrors(form model.FormState) []string {
	var keys []string
	for field := range form.Errors {
		if !formFields[field] {
			keys = append(keys, field)
		}
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, field := range keys {
		out = append(out, field+": "+SanitizeText(form.Errors[field]))
	}
	return out
}
