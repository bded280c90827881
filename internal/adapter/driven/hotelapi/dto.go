package hotelapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

var errMissingToken = errors.New("login response carries no token")

// loginRequest is the JSON body for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginEnvelope accepts the token at the top level, under data, or as an
// OAuth-style access_token.
type loginEnvelope struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	Data        *struct {
		Token string `json:"token"`
	} `json:"data"`
}

func (e loginEnvelope) token() string {
	switch {
	case e.Token != "":
		return e.Token
	case e.Data != nil && e.Data.Token != "":
		return e.Data.Token
	default:
		return e.AccessToken
	}
}

// userRequest is the JSON body for POST /user and PUT /user/{id}.
type userRequest struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func toUserRequest(in model.UserInput) userRequest {
	return userRequest{Fullname: in.Fullname, Username: in.Username, Password: in.Password}
}

// userDTO is one element of GET /user. The backend keys the id as user_id;
// id is accepted as well.
type userDTO struct {
	UserID   flexID `json:"user_id"`
	ID       flexID `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

func (d userDTO) toModel() model.User {
	id := string(d.UserID)
	if id == "" {
		id = string(d.ID)
	}
	return model.User{ID: id, Username: d.Username, Fullname: d.Fullname}
}

// flexID decodes a JSON number or string into its decimal/string form.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// errorBody is the shape of a failed response.
type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func (b errorBody) message() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// fields extracts the field→message map of a 422 body. The map is read from
// "errors" when present, otherwise from the top-level object. Each value may
// be a string or a list of strings; lists keep their first entry.
func (b errorBody) fields(raw []byte) map[string]string {
	source, topLevel := raw, true
	if len(b.Errors) > 0 && b.Errors[0] == '{' {
		source, topLevel = b.Errors, false
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(source, &entries); err != nil {
		return nil
	}

	out := make(map[string]string, len(entries))
	for field, value := range entries {
		if topLevel && reservedErrorKeys[field] {
			continue
		}
		if msg := fieldMessage(value); msg != "" {
			out[field] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// reservedErrorKeys are envelope keys, not form fields, in a bare 422 body.
var reservedErrorKeys = map[string]bool{"message": true, "error": true, "errors": true, "status": true}

func fieldMessage(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var list []string
	if err := json.Unmarshal(value, &list); err == nil && len(list) > 0 {
		return strings.TrimSpace(list[0])
	}
	return ""
}
