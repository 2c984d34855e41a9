package catalog

import "catalog/pkg/logger"

var pkgLog = logger.Nop()

// SetLogger replaces the logger used for price diagnostics and admission notices.
// A nil logger silences the package again.
func SetLogger(l *logger.Logger) {
	if l == nil {
		l = logger.Nop()
	}
	pkgLog = l
}

// Observer is called once for every item that was successfully constructed.
type Observer func(item Item)

// Option tunes item construction.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver registers a hook that sees each freshly built item.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}

func notify(item Item, opts []Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer != nil {
		o.observer(item)
	}
}
