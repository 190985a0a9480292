package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the API.
//
// Detail carries the server's "detail" message when present. Fields carries
// field-keyed validation messages from a 400 body such as
// {"username": ["Username already exists."]}.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Sprintf("api error %d: invalid %s", e.StatusCode, strings.Join(names, ", "))
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match a 401.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// FieldError returns the first message reported for field, or "".
func (e *APIError) FieldError(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// parseAPIError builds an APIError from a response body. Bodies that are not
// JSON objects leave Detail and Fields empty.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	for key, value := range raw {
		if key == "detail" {
			var detail string
			if err := json.Unmarshal(value, &detail); err == nil {
				apiErr.Detail = detail
			}
			continue
		}

		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			if len(list) > 0 {
				apiErr.addField(key, list...)
			}
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil && single != "" {
			apiErr.addField(key, single)
		}
	}

	return apiErr
}

func (e *APIError) addField(name string, msgs ...string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[name] = append(e.Fields[name], msgs...)
}
