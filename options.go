package flowexpr

import "log/slog"

// Option is a function that configures a Templater.
type Option func(*Templater) error

// WithLogHandler sets the slog handler used by the renderer. A nil handler
// is ignored and the default stderr handler is used instead.
func WithLogHandler(handler slog.Handler) Option {
	return func(t *Templater) error {
		if handler != nil {
			t.handler = handler
		}
		return nil
	}
}

// WithURLEncoding percent-encodes substituted values, leaving literal text
// untouched. Useful when the rendered output is embedded in a URL.
func WithURLEncoding() Option {
	return func(t *Templater) error {
		t.urlEncode = true
		return nil
	}
}
