package mockauth

// Profile is the identity the mocked provider reports once its status probe completes.
type Profile struct {
	Email   string
	Subject string
	IDToken string // set only while authenticated
}

// Status mirrors the loading/authenticated/error surface of an OIDC client library.
// At steady state IsLoading is false; IsAuthenticated and Err describe the terminal state.
type Status struct {
	IsLoading       bool
	IsAuthenticated bool
	Err             error
	User            *Profile
}

func (s Status) clone() Status {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Email returns the profile email, or "" before the probe completes.
func (s Status) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}
