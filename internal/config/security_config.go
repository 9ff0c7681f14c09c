package config

import "time"

type SecurityConfig interface {
	GetMaxSessionAge() time.Duration
	GetCookieSecure() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetMaxSessionAge is how long an idle browser session keeps its controller.
func (Security) GetMaxSessionAge() time.Duration {
	return GetEnvDuration("SESSION_MAX_AGE", 30*time.Minute)
}

func (Security) GetCookieSecure() bool {
	return GetEnvBool("COOKIE_SECURE", false)
}
