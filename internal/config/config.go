package config

type Config interface {
	EnvConfig
	CorsConfig
	OIDCConfig
	TimingConfig
	RecipeConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetLogLevel() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OIDC
	Timing
	Recipes
	Security
}

func New() Config {
	return mainConfig{}
}
