package eft

// Logger is the subset of github.com/ausocean/utils/logging.Logger that
// this package needs. Passing a nil Logger (the default) disables logging
// entirely: an optional, injected logging dependency rather than a
// package-level logger.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Option configures Parse.
type Option func(*options)

type options struct {
	log Logger
}

// WithLogger attaches a Logger that Parse will use to report progress
// through the Type-1/Type-2/Type-4 record sequence.
func WithLogger(l Logger) Option {
	return func(o *options) { o.log = l }
}

func (o *options) debugf(msg string, args ...interface{}) {
	if o.log != nil {
		o.log.Debug(msg, args...)
	}
}
