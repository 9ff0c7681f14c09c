package config

import "strings"

// OIDCConfig holds the identity-provider placeholders. The mocked sign-in flow only uses them to
// shape the hosted-UI URLs it pretends to redirect to; nothing is ever fetched from the authority.
type OIDCConfig interface {
	GetOIDCAuthority() string
	GetOIDCClientID() string
	GetOIDCRedirectURI() string
	GetOIDCPostLogoutRedirectURI() string
	GetOIDCResponseType() string
	GetOIDCScopes() []string
	GetOIDCMockEmail() string
	GetOIDCMockSubject() string
}

type OIDC struct{}

var _ OIDCConfig = OIDC{}

func (OIDC) GetOIDCAuthority() string {
	return strings.TrimSuffix(GetEnv("OIDC_AUTHORITY", "https://cognito-idp.<REGION>.amazonaws.com/<USER_POOL_ID>"), "/")
}

func (OIDC) GetOIDCClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "<APP_CLIENT_ID>")
}

func (OIDC) GetOIDCRedirectURI() string {
	return GetEnv("OIDC_REDIRECT_URI", "http://localhost:5176")
}

func (OIDC) GetOIDCPostLogoutRedirectURI() string {
	return GetEnv("OIDC_POST_LOGOUT_REDIRECT_URI", "http://localhost:5176")
}

func (OIDC) GetOIDCResponseType() string {
	return "code"
}

func (OIDC) GetOIDCScopes() []string {
	return strings.Fields(GetEnv("OIDC_SCOPES", "openid email profile"))
}

// GetOIDCMockEmail is the email the mocked provider signs into its ID tokens.
func (OIDC) GetOIDCMockEmail() string {
	return GetEnv("OIDC_MOCK_EMAIL", "user@cognito.example.com")
}

func (OIDC) GetOIDCMockSubject() string {
	return GetEnv("OIDC_MOCK_SUBJECT", "mock-cognito-subject")
}
