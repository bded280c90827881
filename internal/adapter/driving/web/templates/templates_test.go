package templates

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vm "github.com/ericfisherdev/hotelhub/internal/adapter/driving/web/viewmodel"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayout_WrapsBody(t *testing.T) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>inner</p>")
		return err
	})

	html := render(t, Layout("HotelHub <Console>", body))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>HotelHub &lt;Console&gt;</title>")
	assert.Contains(t, html, "<p>inner</p>")
	assert.Contains(t, html, `href="/static/app.css"`)
}

func TestLoginPage(t *testing.T) {
	html := render(t, LoginPage(vm.LoginPageViewModel{
		Username:    `alice"><script>`,
		Error:       "Invalid username or password",
		CSRFToken:   "tok",
		RegisterURL: "/register",
	}))

	assert.Contains(t, html, `action="/login"`)
	assert.Contains(t, html, `name="csrf_token" value="tok"`)
	assert.Contains(t, html, "Invalid username or password")
	assert.Contains(t, html, `href="/register"`)
	assert.Contains(t, html, "Create an Account")
	assert.NotContains(t, html, "<script>")
}

func TestLoginPage_NoErrorWhenEmpty(t *testing.T) {
	html := render(t, LoginPage(vm.LoginPageViewModel{RegisterURL: "/register"}))
	assert.NotContains(t, html, "alert-error")
}

func TestLoginPage_RejectsScriptRegisterURL(t *testing.T) {
	html := render(t, LoginPage(vm.LoginPageViewModel{RegisterURL: "javascript:alert(1)"}))
	assert.NotContains(t, html, "javascript:")
}

func TestDashboardPage_Chrome(t *testing.T) {
	html := render(t, DashboardPage(vm.DashboardViewModel{
		Username:  "alice",
		CSRFToken: "tok",
		Cards:     []vm.FeatureCardViewModel{{Title: "Welcome to HotelHub", BodyHTML: "<p><strong>hi</strong></p>"}},
	}))

	assert.Contains(t, html, "User: alice")
	assert.Contains(t, html, ">Users</a>")
	assert.Contains(t, html, ">Reservations</a>")
	assert.Contains(t, html, ">Explore</a>")
	assert.Contains(t, html, ">Profile</a>")
	assert.Contains(t, html, ">Settings</a>")
	assert.Contains(t, html, `action="/logout"`)
	assert.Contains(t, html, "Welcome to HotelHub")
	assert.Contains(t, html, "<p><strong>hi</strong></p>")
	assert.Contains(t, html, "No users found.")
	assert.Contains(t, html, `href="/dashboard?modal=create"`)
	assert.NotContains(t, html, `role="dialog"`)
}

func TestDashboardPage_UsersAndNotices(t *testing.T) {
	html := render(t, DashboardPage(vm.DashboardViewModel{
		Username: "alice",
		Notices:  []vm.NoticeViewModel{{Kind: "success", Text: "Successfully Added"}},
		Users: []vm.UserRowViewModel{{
			ID:         "5",
			Username:   "bob",
			Fullname:   "Bob <Lee>",
			ReadPath:   "/dashboard?modal=update&id=5",
			UpdatePath: "/dashboard?modal=update&id=5",
			DeletePath: "/dashboard?modal=delete&id=5",
		}},
	}))

	assert.Contains(t, html, `<p class="alert alert-success" role="status">Successfully Added</p>`)
	assert.Contains(t, html, "Successfully Added")
	assert.Contains(t, html, "Bob &lt;Lee&gt;")
	assert.Contains(t, html, `href="/dashboard?modal=update&amp;id=5">Read</a>`)
	assert.Contains(t, html, `href="/dashboard?modal=delete&amp;id=5">Delete</a>`)
	assert.NotContains(t, html, "No users found.")
}

func TestDashboardPage_ErrorNotice(t *testing.T) {
	html := render(t, DashboardPage(vm.DashboardViewModel{
		Notices: []vm.NoticeViewModel{{Kind: "error", Text: "Backend <down>"}},
	}))

	assert.Contains(t, html, `<p class="alert alert-error" role="alert">Backend &lt;down&gt;</p>`)
	assert.NotContains(t, html, "alert-success")
}

func TestDashboardPage_OptionalFieldAttributes(t *testing.T) {
	html := render(t, DashboardPage(vm.DashboardViewModel{
		Modal: &vm.ModalViewModel{
			Kind:   "update",
			Action: "/users/5",
			Fields: []vm.FieldViewModel{{Name: "password", Label: "Password", Type: "password"}},
		},
	}))

	assert.Contains(t, html, `<label for="field-password">Password</label>`)
	assert.Contains(t, html, `<input id="field-password" name="password" type="password">`)
	assert.NotContains(t, html, "field-error")
	assert.NotContains(t, html, `class="alert alert-error"`)
}

func TestDashboardPage_FormModal(t *testing.T) {
	html := render(t, DashboardPage(vm.DashboardViewModel{
		CSRFToken: "tok",
		Modal: &vm.ModalViewModel{
			Kind:        "create",
			Title:       "Create User",
			Action:      "/users",
			SubmitLabel: "Create User",
			Fields: []vm.FieldViewModel{
				{Name: "fullname", Label: "Fullname", Type: "text", Value: "Bob Lee", Required: true},
				{Name: "username", Label: "Username", Type: "text", Value: "bob", Error: "taken", Required: true},
				{Name: "password", Label: "Password", Type: "password", Required: true},
			},
			FormErrors: []string{"email: invalid"},
		},
	}))

	assert.Contains(t, html, `role="dialog"`)
	assert.Contains(t, html, `action="/users"`)
	assert.Contains(t, html, `name="username" type="text" value="bob" required aria-invalid="true">`)
	assert.Contains(t, html, `<p class="field-error">taken</p>`)
	assert.Contains(t, html, `value="Bob Lee"`)
	assert.Contains(t, html, "email: invalid")
	assert.Contains(t, html, `name="csrf_token" value="tok"`)
}

func TestDashboardPage_DeleteConfirm(t *testing.T) {
	html := render(t, DashboardPage(vm.DashboardViewModel{
		Modal: &vm.ModalViewModel{
			Kind:        "delete",
			Title:       "Are you sure?",
			Action:      "/users/5/delete",
			SubmitLabel: "Yes, delete it!",
			Username:    "bob",
		},
	}))

	assert.Contains(t, html, "Are you sure?")
	assert.Contains(t, html, `action="/users/5/delete"`)
	assert.Contains(t, html, `name="confirm" value="yes"`)
	assert.Contains(t, html, `name="confirm" value="no"`)
	assert.Contains(t, html, "Yes, delete it!")
	assert.Contains(t, html, "<strong>bob</strong>")
}
