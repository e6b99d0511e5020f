package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"4002"`
	// BodyLimitBytes caps the accepted upload body size.
	BodyLimitBytes int `mapstructure:"body_limit_bytes" default:"1048576"`
}
