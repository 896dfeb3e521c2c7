package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the size of uploaded datasets and label images.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"32"`
}

// BodyLimit returns the request body limit in bytes, at least 1 MB.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB < 1 {
		return 1 << 20
	}
	return c.BodyLimitMB << 20
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}
