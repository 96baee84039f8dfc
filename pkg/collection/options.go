package collection

import "go.uber.org/zap"

type options struct {
	log  *zap.Logger
	name string
}

// Option configures a Collection.
type Option func(*options)

// WithLogger sets the logger used for state transitions and store faults.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithName tags every log entry with the collection's name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}
