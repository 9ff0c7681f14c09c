// Package screens holds the state machines behind each portal screen. Screens never change the
// session or the current view themselves; they report transitions through the callbacks the
// controller binds when it mounts them.
//
// Screen methods are called with the owning controller's lock held. Timer callbacks re-enter the
// controller through a Dispatcher, so they observe the same lock.
package screens

// Dispatcher runs fn serialised with every other operation on the owning controller.
type Dispatcher func(fn func())

// Notice is a one-line message shown on a screen.
type Notice struct {
	Text    string
	IsError bool
}

func info(text string) Notice {
	return Notice{Text: text}
}

func failure(text string) Notice {
	return Notice{Text: text, IsError: true}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
