// Package guard decides which view the client may show.
package guard

import "fmt"

type View string

const (
	Home     View = "home"
	Login    View = "login"
	Register View = "register"
	Chat     View = "chat"
	Profile  View = "profile"
)

var views = map[View]bool{
	Home:     false,
	Login:    false,
	Register: false,
	Chat:     true,
	Profile:  true,
}

// Protected reports whether v requires a signed-in session.
func Protected(v View) bool {
	return views[v]
}

// Parse maps user input to a known view.
func Parse(s string) (View, error) {
	v := View(s)
	if _, ok := views[v]; !ok {
		return "", fmt.Errorf("unknown view %q", s)
	}
	return v, nil
}

// Views lists every view in menu order.
func Views() []View {
	return []View{Home, Login, Register, Chat, Profile}
}

type Decision struct {
	View       View
	Redirected bool
}

// Resolve picks the view to render for a navigation request. Signed-out users
// asking for a protected view get the login view; signed-in users asking for
// login go straight to the chat. It holds no state and is called on every
// navigation.
func Resolve(authenticated bool, requested View) Decision {
	switch {
	case !authenticated && Protected(requested):
		return Decision{View: Login, Redirected: true}
	case authenticated && requested == Login:
		return Decision{View: Chat, Redirected: true}
	default:
		return Decision{View: requested}
	}
}
