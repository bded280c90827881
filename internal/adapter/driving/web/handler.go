// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/hotelhub/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/hotelhub/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/hotelhub/internal/application"
	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

const pageTitle = "HotelHub"

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	sessions      *application.SessionService
	users         *application.UserService
	registerURL   string
	secureCookies bool
	cards         []vm.FeatureCardViewModel
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	sessions *application.SessionService,
	users *application.UserService,
	registerURL string,
	secureCookies bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sessions:      sessions,
		users:         users,
		registerURL:   registerURL,
		secureCookies: secureCookies,
		cards:         featureCards(),
		logger:        logger,
	}
}

// Root sends every visitor to the login route, which forwards operators with
// a session on to the dashboard.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginForm renders the sign-in page, or redirects to the dashboard when the
// request already carries a usable session.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.Resolve(r.Context(), sessionID(r)); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, vm.LoginPageViewModel{})
}

// Login exchanges the submitted credentials for a session. Every failure
// re-renders the form with the same generic message and stores nothing.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	username := r.FormValue("username")
	session, err := h.sessions.Login(r.Context(), sessionID(r), username, r.FormValue("password"))
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, model.ErrInvalidCredentials) {
			h.logger.Error("login failed", "error", err)
			status = http.StatusInternalServerError
		}
		h.renderLogin(w, r, status, vm.LoginPageViewModel{Username: username, Error: model.TextLoginFailed})
		return
	}

	h.setSessionCookie(w, session)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the local session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	if err := h.sessions.Logout(r.Context(), sessionID(r)); err != nil {
		h.logger.Error("logout failed", "error", err)
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard fetches the user list and renders the page. The modal and id
// query parameters open one of the record modals.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())

	users, notices, err := h.loadUsers(r.Context(), session)
	if err != nil {
		h.redirectToLogin(w, r)
		return
	}

	form := openModal(model.ParseModalKind(r.URL.Query().Get("modal")), r.URL.Query().Get("id"), users)
	h.renderDashboard(w, r, http.StatusOK, session, users, notices, form)
}

// CreateUser submits the create form.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}
	session, _ := sessionFrom(r.Context())

	out, err := h.users.Create(r.Context(), session, formInput(r))
	h.finishMutation(w, r, session, model.FormState{Modal: model.ModalCreate}, out, err)
}

// UpdateUser submits the update form for the record in the path.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}
	session, _ := sessionFrom(r.Context())
	id := r.PathValue("id")

	out, err := h.users.Update(r.Context(), session, id, formInput(r))
	h.finishMutation(w, r, session, model.FormState{Modal: model.ModalUpdate, UserID: id}, out, err)
}

// DeleteUser answers the delete confirmation. Only confirm=yes sends the
// request; any other answer closes the dialog.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}
	session, _ := sessionFrom(r.Context())
	id := r.PathValue("id")
	confirmed := r.FormValue("confirm") == "yes"

	out, err := h.users.Delete(r.Context(), session, id, confirmed)
	h.finishMutation(w, r, session, model.FormState{Modal: model.ModalDelete, UserID: id}, out, err)
}

// finishMutation applies the outcome to the modal that was open and renders
// the dashboard. A successful mutation reuses the list the service already
// re-fetched; otherwise the list is loaded for display.
func (h *Handler) finishMutation(
	w http.ResponseWriter,
	r *http.Request,
	session model.Session,
	open model.FormState,
	out application.Outcome,
	err error,
) {
	if err != nil {
		if errors.Is(err, model.ErrNoSession) {
			h.redirectToLogin(w, r)
			return
		}
		h.logger.Error("mutation failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	form := model.Reduce(open, out.Event)
	notices := out.Notices
	users := out.Users

	if !out.Refreshed {
		var listNotices []model.Notice
		users, listNotices, err = h.loadUsers(r.Context(), session)
		if err != nil {
			h.redirectToLogin(w, r)
			return
		}
		notices = append(notices, listNotices...)
	}

	status := http.StatusOK
	if out.Event.Kind == model.EventRejected {
		status = http.StatusUnprocessableEntity
	}
	h.renderDashboard(w, r, status, session, users, notices, form)
}

// loadUsers fetches the list for display. Backend failures become a notice;
// only a missing session is returned as an error.
func (h *Handler) loadUsers(ctx context.Context, session model.Session) ([]model.User, []model.Notice, error) {
	users, err := h.users.List(ctx, session)
	if errors.Is(err, model.ErrNoSession) {
		return nil, nil, err
	}
	if err != nil {
		return nil, []model.Notice{{Kind: model.NoticeError, Text: model.TextListFailed}}, nil
	}
	return users, nil, nil
}

// openModal drives the closed form state with the open event named by the
// query. An unknown record id leaves the modal closed.
func openModal(kind model.ModalKind, id string, users []model.User) model.FormState {
	var closed model.FormState
	switch kind {
	case model.ModalCreate:
		return model.Reduce(closed, model.Event{Kind: model.EventOpenCreate})
	case model.ModalUpdate, model.ModalDelete:
		user, ok := findUser(users, id)
		if !ok {
			return closed
		}
		event := model.EventOpenUpdate
		if kind == model.ModalDelete {
			event = model.EventOpenDelete
		}
		return model.Reduce(closed, model.Event{Kind: event, User: user})
	default:
		return closed
	}
}

func findUser(users []model.User, id string) (model.User, bool) {
	if id == "" {
		return model.User{}, false
	}
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func formInput(r *http.Request) model.UserInput {
	return model.UserInput{
		Fullname: r.FormValue("fullname"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, page vm.LoginPageViewModel) {
	page.CSRFToken = csrfToken(w, r, h.secureCookies)
	page.RegisterURL = h.registerURL
	h.render(w, r, status, templates.LoginPage(page))
}

func (h *Handler) renderDashboard(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	session model.Session,
	users []model.User,
	notices []model.Notice,
	form model.FormState,
) {
	page := vm.DashboardViewModel{
		Username:  session.Identity.Username,
		CSRFToken: csrfToken(w, r, h.secureCookies),
		Notices:   toNoticeViewModels(notices),
		Cards:     h.cards,
		Users:     toUserRowViewModels(users),
		Modal:     toModalViewModel(form),
	}
	h.render(w, r, status, templates.DashboardPage(page))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Layout(pageTitle, body).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}
