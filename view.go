// Package htmlview renders structured data into an in-memory HTML container
// and reconciles the container with fresh markup without rebuilding it.
package htmlview

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/livefir/htmlview/internal/diff"
	"github.com/livefir/htmlview/internal/dom"
	"github.com/livefir/htmlview/internal/metrics"
)

// ErrNoGenerator is returned when a view is created without a Generator
var ErrNoGenerator = errors.New("view has no markup generator")

// Generator turns the current data of a view into markup. Each concrete
// view supplies its own. Successive calls with data of the same shape must
// produce markup with the same element structure for Update to work.
type Generator interface {
	GenerateMarkup(data any) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface
type GeneratorFunc func(data any) (string, error)

// GenerateMarkup calls f(data)
func (f GeneratorFunc) GenerateMarkup(data any) (string, error) {
	return f(data)
}

// Messages is implemented by generators that declare their own default
// error and informational messages.
type Messages interface {
	ErrorMessage() string
	Message() string
}

// Patch is a mutation applied to the target by Update
type Patch = diff.Patch

// Summary describes the outcome of the last Update
type Summary = diff.Summary

const (
	PatchSetText = diff.PatchSetText
	PatchSetAttr = diff.PatchSetAttr
)

// View renders data into a Target. A View is not safe for concurrent use:
// every method reads and writes the target's subtree.
type View struct {
	target    *Target
	generator Generator
	data      any

	config     *Config
	logger     *zap.Logger
	metrics    *metrics.Collector
	reconciler *diff.Reconciler
	patches    []Patch
	summary    Summary
}

// New creates a view that owns target and renders with generator
func New(target *Target, generator Generator, opts ...Option) (*View, error) {
	if target == nil || target.node == nil {
		return nil, ErrNoTarget
	}
	if generator == nil {
		return nil, ErrNoGenerator
	}

	v := &View{
		target:     target,
		generator:  generator,
		config:     DefaultConfig(),
		logger:     zap.NewNop(),
		reconciler: diff.NewReconciler(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Target returns the container owned by the view
func (v *View) Target() *Target {
	return v.target
}

// Data returns the most recent data passed to Render or Update
func (v *View) Data() any {
	return v.data
}

// Render generates markup for data. With attach set the target's children
// are replaced by the markup and "" is returned; otherwise the markup is
// returned and the target is left alone, so that a parent view can embed it.
//
// Absent or empty data is not an error: the error state is rendered instead
// and the generator is not called.
func (v *View) Render(data any, attach bool) (string, error) {
	if isEmpty(data) {
		v.logger.Warn("no data to render, showing error state")
		if v.metrics != nil {
			v.metrics.IncrementEmptyRender()
		}
		return "", v.RenderError("")
	}

	v.data = data
	markup, err := v.generate()
	if err != nil {
		return "", err
	}
	if v.config.Minify {
		markup = minifyHTML(markup)
	}

	if v.metrics != nil {
		v.metrics.IncrementRender(attach)
	}
	if !attach {
		return markup, nil
	}

	if err := v.replace(markup); err != nil {
		return "", err
	}
	if v.logger.Core().Enabled(zap.DebugLevel) {
		v.logger.Debug("view rendered", zap.Int("elements", len(v.target.Elements())))
	}
	return "", nil
}

// Attach is Render(data, true)
func (v *View) Attach(data any) error {
	_, err := v.Render(data, true)
	return err
}

// Update regenerates markup for data and patches the target in place.
// Elements are matched by position only; elements past the shorter of
// the two trees are neither added, removed nor touched.
//
// Update markup is never minified: the minifier drops empty attributes,
// which would then never be copied onto the live nodes.
func (v *View) Update(data any) error {
	v.data = data
	markup, err := v.generate()
	if err != nil {
		return err
	}

	incoming, err := dom.ParseFragment(markup, v.target.node)
	if err != nil {
		return fmt.Errorf("failed to parse updated markup: %w", err)
	}

	v.patches = v.reconciler.Reconcile(v.target.node, incoming)
	v.summary = v.reconciler.Summary()
	summary := v.summary

	if v.metrics != nil {
		v.metrics.RecordUpdate(summary.TextPatches, summary.AttrPatches, summary.Skipped)
	}
	if summary.Mismatched() {
		v.logger.Warn("live and incoming trees differ in shape",
			zap.Int("live", summary.LiveNodes),
			zap.Int("incoming", summary.IncomingNodes))
	}
	v.logger.Debug("view updated",
		zap.Int("text_patches", summary.TextPatches),
		zap.Int("attr_patches", summary.AttrPatches))
	return nil
}

// LastPatches returns the patches applied by the most recent Update. It is
// empty after a full render or status render.
func (v *View) LastPatches() []Patch {
	return v.patches
}

// LastSummary returns the counters of the most recent Update, or the zero
// Summary after a full render or status render
func (v *View) LastSummary() Summary {
	return v.summary
}

// RenderSpinner replaces the target's content with a loading indicator
func (v *View) RenderSpinner() error {
	if v.metrics != nil {
		v.metrics.IncrementSpinner()
	}
	return v.renderStatus("spinner", "")
}

// RenderError replaces the target's content with the error template. An
// empty message selects the view's default error message.
func (v *View) RenderError(message string) error {
	if message == "" {
		message = v.errorMessage()
	}
	if v.metrics != nil {
		v.metrics.IncrementErrorRender()
	}
	return v.renderStatus("error", message)
}

// RenderMessage replaces the target's content with the message template. An
// empty message selects the view's default message.
func (v *View) RenderMessage(message string) error {
	if message == "" {
		message = v.message()
	}
	if v.metrics != nil {
		v.metrics.IncrementMessage()
	}
	return v.renderStatus("message", message)
}

func (v *View) renderStatus(name, message string) error {
	markup, err := statusMarkup(name, v.config.IconsURL, message)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return v.replace(markup)
}

// replace swaps the target's children and forgets the last update report,
// which described nodes that no longer exist
func (v *View) replace(markup string) error {
	v.patches = nil
	v.summary = Summary{}
	v.target.clear()
	if err := v.target.insert(markup); err != nil {
		return fmt.Errorf("failed to insert markup: %w", err)
	}
	return nil
}

func (v *View) generate() (string, error) {
	markup, err := v.generator.GenerateMarkup(v.data)
	if err != nil {
		if v.metrics != nil {
			v.metrics.IncrementGenerationError()
		}
		v.logger.Error("markup generation failed", zap.Error(err))
		return "", fmt.Errorf("failed to generate markup: %w", err)
	}
	if v.metrics != nil {
		v.metrics.IncrementCustomCounter(fmt.Sprintf("%T", v.generator))
	}
	return markup, nil
}

func (v *View) errorMessage() string {
	if m, ok := v.generator.(Messages); ok && m.ErrorMessage() != "" {
		return m.ErrorMessage()
	}
	return v.config.ErrorMessage
}

func (v *View) message() string {
	if m, ok := v.generator.(Messages); ok && m.Message() != "" {
		return m.Message()
	}
	return v.config.Message
}

// isEmpty reports whether data is absent or an empty collection
func isEmpty(data any) bool {
	if data == nil {
		return true
	}

	val := reflect.ValueOf(data)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return true
		}
		return isEmpty(val.Elem().Interface())
	case reflect.Slice, reflect.Map:
		return val.IsNil() || val.Len() == 0
	case reflect.Array:
		return val.Len() == 0
	}
	return false
}
