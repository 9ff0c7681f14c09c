package screens

import (
	"strings"

	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/jrsteele09/cds-portal/recipes"
	"github.com/rs/zerolog/log"
)

// Destination is a Dashboard navigation button.
type Destination string

const (
	DestToDo      Destination = "todo"
	DestDashboard Destination = "dashboard"
	DestWeather   Destination = "weather"
	DestRegister  Destination = "register"
	DestLogin     Destination = "login"
	DestContact   Destination = "contact"
	DestSpiceRack Destination = "spice-rack"
	DestLogout    Destination = "logout"
)

// Destinations lists the buttons in display order.
func Destinations() []Destination {
	return []Destination{DestToDo, DestDashboard, DestWeather, DestRegister, DestLogin, DestContact, DestSpiceRack, DestLogout}
}

// Panel is the content area opened inside the Dashboard.
type Panel string

const (
	PanelNone      Panel = ""
	PanelWeather   Panel = "weather"
	PanelContact   Panel = "contact"
	PanelSpiceRack Panel = "spice-rack"
)

// DashboardCallbacks are the controller transitions reachable from the Dashboard. Weather, contact
// and spice-rack open panels inside the Dashboard when their callback is nil.
type DashboardCallbacks struct {
	OnGoToToDo      func()
	OnGoToDashboard func()
	OnWeather       func()
	OnRegister      func()
	OnLogin         func()
	OnContact       func()
	OnSpiceRack     func()
	OnLogout        func()
}

const MsgContactThanks = "Thank you for your message! We will get back to you soon."

// Dashboard is the navigation hub. It owns the panel selection, the contact form and the recipe
// browser; session and view changes go through its callbacks.
type Dashboard struct {
	callbacks DashboardCallbacks
	panel     Panel
	browser   *recipes.Browser

	contactName  string
	contactEmail string
	contactText  string
	notice       Notice
}

func NewDashboard(callbacks DashboardCallbacks, browser *recipes.Browser) *Dashboard {
	d := &Dashboard{callbacks: callbacks, browser: browser}
	if d.callbacks.OnWeather == nil {
		d.callbacks.OnWeather = func() { d.open(PanelWeather) }
	}
	if d.callbacks.OnContact == nil {
		d.callbacks.OnContact = func() { d.open(PanelContact) }
	}
	if d.callbacks.OnSpiceRack == nil {
		d.callbacks.OnSpiceRack = func() { d.open(PanelSpiceRack) }
	}
	return d
}

// Navigate invokes exactly the callback bound to dest.
func (d *Dashboard) Navigate(dest Destination) error {
	var fn func()
	switch dest {
	case DestToDo:
		fn = d.callbacks.OnGoToToDo
	case DestDashboard:
		fn = d.callbacks.OnGoToDashboard
	case DestWeather:
		fn = d.callbacks.OnWeather
	case DestRegister:
		fn = d.callbacks.OnRegister
	case DestLogin:
		fn = d.callbacks.OnLogin
	case DestContact:
		fn = d.callbacks.OnContact
	case DestSpiceRack:
		fn = d.callbacks.OnSpiceRack
	case DestLogout:
		fn = d.callbacks.OnLogout
	default:
		return perrors.Wrapf(perrors.ErrUnknownDestination, "[Dashboard Navigate] %q", dest)
	}
	call(fn)
	return nil
}

func (d *Dashboard) open(p Panel) {
	d.panel = p
	d.notice = Notice{}
}

// SubmitContact validates the contact form. The message is only logged.
func (d *Dashboard) SubmitContact(name, email, message string) error {
	d.contactName, d.contactEmail, d.contactText = name, email, message
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(message) == "" {
		d.notice = failure(MsgFillAllFields)
		return perrors.Wrapf(perrors.ErrMissingFields, "[Dashboard SubmitContact]")
	}

	log.Info().Str("name", name).Str("email", email).Int("length", len(message)).Msg("Contact form submitted")
	d.contactName, d.contactEmail, d.contactText = "", "", ""
	d.notice = info(MsgContactThanks)
	return nil
}

// Browser is the SpiceRack recipe browser shown in the spice-rack panel.
func (d *Dashboard) Browser() *recipes.Browser {
	return d.browser
}

type ContactForm struct {
	Name    string
	Email   string
	Message string
}

type DashboardView struct {
	Panel   Panel
	Contact ContactForm
	Notice  Notice
	Recipes recipes.View
}

func (d *Dashboard) View() DashboardView {
	v := DashboardView{
		Panel:   d.panel,
		Contact: ContactForm{Name: d.contactName, Email: d.contactEmail, Message: d.contactText},
		Notice:  d.notice,
	}
	if d.browser != nil {
		v.Recipes = d.browser.View()
	}
	return v
}
