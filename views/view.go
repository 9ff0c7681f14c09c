// Package views enumerates the mutually exclusive screens the portal controller can display.
package views

import "fmt"

// View identifies one screen. The zero value is Register, which is also the fallback screen.
type View int

const (
	Register View = iota
	Login
	Welcome
	Dashboard
	ToDo
)

var names = map[View]string{
	Register:  "register",
	Login:     "login",
	Welcome:   "welcome",
	Dashboard: "dashboard",
	ToDo:      "todo",
}

func (v View) String() string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// RequiresAuth reports whether the render selection only shows v to an authenticated session.
// ToDo is deliberately public: it is selected before the authentication guard.
func (v View) RequiresAuth() bool {
	return v == Welcome || v == Dashboard
}
