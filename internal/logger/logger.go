package logger

import (
	"go.uber.org/zap"
)

// New creates a zap logger tuned for the given environment. Production
// environments get JSON output at info level; everything else gets the
// development console encoder at debug level.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// NewNamed creates an environment-aware logger carrying the service name.
func NewNamed(env, service string) (*zap.Logger, error) {
	log, err := New(env)
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
