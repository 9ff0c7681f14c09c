package config

import "time"

// TimingConfig holds the simulated latencies of the login flows.
type TimingConfig interface {
	GetLoginDelay() time.Duration
	GetAuthProbeDelay() time.Duration
	GetAuthRedirectDelay() time.Duration
	GetAuthNotifyDelay() time.Duration
	GetAuthSignoutDelay() time.Duration
}

type Timing struct{}

var _ TimingConfig = Timing{}

func (Timing) GetLoginDelay() time.Duration {
	return GetEnvDuration("LOGIN_DELAY", 1*time.Second)
}

func (Timing) GetAuthProbeDelay() time.Duration {
	return GetEnvDuration("AUTH_PROBE_DELAY", 1500*time.Millisecond)
}

func (Timing) GetAuthRedirectDelay() time.Duration {
	return GetEnvDuration("AUTH_REDIRECT_DELAY", 1*time.Second)
}

func (Timing) GetAuthNotifyDelay() time.Duration {
	return GetEnvDuration("AUTH_NOTIFY_DELAY", 500*time.Millisecond)
}

func (Timing) GetAuthSignoutDelay() time.Duration {
	return GetEnvDuration("AUTH_SIGNOUT_DELAY", 1*time.Second)
}
