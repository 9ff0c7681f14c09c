package sessions

import "strings"

// Fixed identity handed out by every successful login. Authentication is simulated, so there is
// no per-user lookup behind it.
const (
	MockUserEmail = "user@example.com"
	MockUserID    = "mock-user-id"
)

// User is the identity attached to an authenticated session.
type User struct {
	Email string
	ID    string
}

// Session holds the authentication state of one browser. User is non-nil only while
// IsAuthenticated is true.
type Session struct {
	IsAuthenticated bool
	User            *User
}

// MockUser returns the fixed identity used by the simulated login.
func MockUser() *User {
	return &User{Email: MockUserEmail, ID: MockUserID}
}

// Authenticated returns a signed-in session for user.
func Authenticated(user *User) Session {
	return Session{IsAuthenticated: true, User: user}
}

// Email returns the user's email or "" for an anonymous session.
func (s Session) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}

// DisplayName is the local part of the user's email, or "User" when there is none.
func (s Session) DisplayName() string {
	local, _, _ := strings.Cut(s.Email(), "@")
	if local == "" {
		return "User"
	}
	return local
}
