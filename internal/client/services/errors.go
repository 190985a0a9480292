package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/corpchat/internal/client/client"
)

// User-facing fallback messages.
const (
	MsgLoginFailed    = "invalid username or password"
	MsgRegisterFailed = "registration failed"
	MsgProfileFailed  = "failed to update profile"
	MsgUnavailable    = "cannot reach the server"
	MsgSessionExpired = "session expired, please log in again"
	MsgFetchFailed    = "failed to load messages"
	MsgSendFailed     = "failed to send message"
)

// FormError is what a view renders after a failed operation: messages under
// the named inputs, or a single banner when no field matched.
type FormError struct {
	Fields  map[string]string
	General string
	Err     error
}

func (e *FormError) Error() string {
	if e.General != "" {
		return e.General
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return strings.Join(parts, "; ")
}

func (e *FormError) Unwrap() error { return e.Err }

// Field returns the message for one input, or "".
func (e *FormError) Field(name string) string {
	return e.Fields[name]
}

// toFormError maps a client error onto a form. Server field messages are
// kept only for the form's own fields; anything else collapses into General.
func toFormError(err error, fallback string, formFields ...string) *FormError {
	fe := &FormError{Err: err}

	if errors.Is(err, client.ErrUnavailable) {
		fe.General = MsgUnavailable
		return fe
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		fe.General = fallback
		return fe
	}

	for _, name := range formFields {
		if msg := apiErr.FieldError(name); msg != "" {
			if fe.Fields == nil {
				fe.Fields = make(map[string]string)
			}
			fe.Fields[name] = msg
		}
	}
	if len(fe.Fields) > 0 {
		return fe
	}

	if apiErr.Detail != "" {
		fe.General = apiErr.Detail
	} else {
		fe.General = fallback
	}
	return fe
}
