package htmlview

import (
	"go.uber.org/zap"

	"github.com/livefir/htmlview/internal/metrics"
)

// Option configures a View
type Option func(*View)

// WithLogger sets the logger used by the view
func WithLogger(logger *zap.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithMetrics records render and update counters into collector
func WithMetrics(collector *metrics.Collector) Option {
	return func(v *View) {
		v.metrics = collector
	}
}

// WithConfig replaces the view settings with a copy of config
func WithConfig(config *Config) Option {
	return func(v *View) {
		if config != nil {
			c := *config
			v.config = &c
		}
	}
}

// WithIconsURL sets the SVG sprite referenced by the status templates
func WithIconsURL(url string) Option {
	return func(v *View) {
		v.config.IconsURL = url
	}
}

// WithMinify enables or disables minification of generated markup
func WithMinify(enabled bool) Option {
	return func(v *View) {
		v.config.Minify = enabled
	}
}
