package screens

import perrors "github.com/jrsteele09/cds-portal/internal/errors"

const MsgPasswordMismatch = "Error: Passwords do not match"

type RegisterCallbacks struct {
	OnRegisterSuccess func()
	OnSwitchToLogin   func()
}

// Register is the sign-up form. Nothing is stored: a valid submission simply reports success.
type Register struct {
	callbacks RegisterCallbacks
	email     string
	notice    Notice
}

func NewRegister(callbacks RegisterCallbacks) *Register {
	return &Register{callbacks: callbacks}
}

// Submit requires every field and a matching confirmation.
func (s *Register) Submit(email, password, confirm string) error {
	s.email = email
	if email == "" || password == "" || confirm == "" {
		s.notice = failure(MsgFillAllFields)
		return perrors.Wrapf(perrors.ErrMissingFields, "[Register Submit]")
	}
	if password != confirm {
		s.notice = failure(MsgPasswordMismatch)
		return perrors.Wrapf(perrors.ErrPasswordMismatch, "[Register Submit]")
	}
	s.notice = Notice{}
	call(s.callbacks.OnRegisterSuccess)
	return nil
}

func (s *Register) SwitchToLogin() {
	call(s.callbacks.OnSwitchToLogin)
}

type RegisterView struct {
	Email  string
	Notice Notice
}

func (s *Register) View() RegisterView {
	return RegisterView{Email: s.email, Notice: s.notice}
}
