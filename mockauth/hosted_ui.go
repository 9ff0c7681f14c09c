package mockauth

import (
	"net/url"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/jrsteele09/cds-portal/internal/config"
	"golang.org/x/oauth2"
)

// HostedUI builds the redirect URLs a real authorization-code flow would send the browser to.
// The mock provider only logs and exposes them; it never follows them.
type HostedUI struct {
	authority             string
	postLogoutRedirectURI string
	oauth                 oauth2.Config
}

// AuthRequest is one authorization attempt: the URL plus the values a callback would verify.
type AuthRequest struct {
	URL      string
	State    string
	Nonce    string
	Verifier string
}

func NewHostedUI(cfg config.OIDCConfig) *HostedUI {
	scopes := cfg.GetOIDCScopes()
	if !slices.Contains(scopes, oidc.ScopeOpenID) {
		scopes = append([]string{oidc.ScopeOpenID}, scopes...)
	}
	authority := cfg.GetOIDCAuthority()
	return &HostedUI{
		authority:             authority,
		postLogoutRedirectURI: cfg.GetOIDCPostLogoutRedirectURI(),
		oauth: oauth2.Config{
			ClientID: cfg.GetOIDCClientID(),
			Endpoint: oauth2.Endpoint{
				AuthURL:  authority + "/oauth2/authorize",
				TokenURL: authority + "/oauth2/token",
			},
			RedirectURL: cfg.GetOIDCRedirectURI(),
			Scopes:      scopes,
		},
	}
}

func (h *HostedUI) Authority() string {
	return h.authority
}

func (h *HostedUI) ClientID() string {
	return h.oauth.ClientID
}

// AuthCodeURL returns a fresh PKCE (S256) authorization request with state and nonce.
func (h *HostedUI) AuthCodeURL() AuthRequest {
	req := AuthRequest{
		State:    uuid.New().String(),
		Nonce:    uuid.New().String(),
		Verifier: oauth2.GenerateVerifier(),
	}
	req.URL = h.oauth.AuthCodeURL(req.State,
		oauth2.S256ChallengeOption(req.Verifier),
		oidc.Nonce(req.Nonce),
	)
	return req
}

// LogoutURL is the hosted UI logout endpoint for this client.
func (h *HostedUI) LogoutURL() string {
	q := url.Values{}
	q.Set("client_id", h.oauth.ClientID)
	q.Set("logout_uri", h.postLogoutRedirectURI)
	return h.authority + "/logout?" + q.Encode()
}
