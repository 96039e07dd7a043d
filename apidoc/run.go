package apidoc

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"go.jacobcolvin.com/apidocs/blueprint"
	"go.jacobcolvin.com/apidocs/comment"
	"go.jacobcolvin.com/apidocs/group"
	"go.jacobcolvin.com/apidocs/inflect"
)

// Mark is an example's explicit documentation choice.
type Mark int

const (
	// MarkUnset leaves the choice to the run's whitelist setting.
	MarkUnset Mark = iota
	// MarkDocs opts an example in. It is required in whitelist mode.
	MarkDocs
	// MarkSkip opts an example out.
	MarkSkip
)

// Example describes one finished test case.
type Example struct {
	// Group is the innermost group enclosing the test case.
	Group *group.Node
	// Description titles the request section.
	Description string
	Docs        Mark
}

// Result is the outcome of [Run.Record].
type Result int

const (
	// Written means the example was appended to its resource document.
	Written Result = iota
	SkippedOptOut
	SkippedNotWhitelisted
	SkippedNoExchange
	SkippedNoAction
	SkippedNoResource
	// SkippedStatus means the response status is [blueprint.Excluded].
	SkippedStatus
	// Failed accompanies every error.
	Failed
)

func (r Result) String() string {
	switch r {
	case Written:
		return "written"
	case SkippedOptOut:
		return "opted out"
	case SkippedNotWhitelisted:
		return "not whitelisted"
	case SkippedNoExchange:
		return "no exchange"
	case SkippedNoAction:
		return "no action group"
	case SkippedNoResource:
		return "no resource group"
	case SkippedStatus:
		return "excluded status"
	case Failed:
		return "failed"
	}

	return fmt.Sprintf("Result(%d)", int(r))
}

// Run is the state of one documentation run. It remembers which resource
// documents were started, so each is rebuilt from scratch exactly once.
//
// Create instances with [NewRun], typically once per test binary in
// TestMain. A Run is safe for concurrent use.
type Run struct {
	logger    *slog.Logger
	extractor *comment.Extractor
	writer    *blueprint.Writer
	whitelist bool
}

// Option configures a Run.
type Option func(*Run)

// WithLogger sets the logger used for notices and skip reasons.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Run) {
		r.logger = logger
	}
}

// NewRun validates cfg, creates its output directory and returns a new Run.
// A nil cfg uses [NewConfig].
func NewRun(cfg *Config, opts ...Option) (*Run, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	ex, err := cfg.NewExtractor()
	if err != nil {
		return nil, err
	}

	r := &Run{
		logger:    slog.Default(),
		extractor: ex,
		whitelist: cfg.Whitelist,
	}

	for _, opt := range opts {
		opt(r)
	}

	ex.Logger = r.logger

	err = os.MkdirAll(cfg.Output, 0o755)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", blueprint.ErrIO, err)
	}

	r.writer = blueprint.NewWriter(cfg.Output,
		blueprint.WithSchema(cfg.Schema),
		blueprint.WithLogger(r.logger),
	)

	return r, nil
}

// Dir returns the output directory.
func (r *Run) Dir() string {
	return r.writer.Dir()
}

// Touched returns the resource keys documented so far, sorted.
func (r *Run) Touched() []string {
	return r.writer.Touched()
}

// Record documents one finished example with its captured exchange.
//
// Examples that cannot or should not be documented are skipped with a
// Result other than [Written] and a nil error. Errors wrap
// [comment.ErrSourceNotFound], [blueprint.ErrDataFormat] or
// [blueprint.ErrIO].
func (r *Run) Record(ex Example, xc *blueprint.Exchange) (Result, error) {
	res, err := r.record(ex, xc)
	if err == nil && res != Written {
		r.logger.Debug("skip example",
			slog.String("example", describe(ex)),
			slog.String("reason", res.String()),
		)
	}

	return res, err
}

func (r *Run) record(ex Example, xc *blueprint.Exchange) (Result, error) {
	switch {
	case ex.Docs == MarkSkip:
		return SkippedOptOut, nil
	case r.whitelist && ex.Docs != MarkDocs:
		return SkippedNotWhitelisted, nil
	case xc == nil:
		return SkippedNoExchange, nil
	}

	action, ok := group.FindAction(ex.Group)
	if !ok {
		return SkippedNoAction, nil
	}

	resource, ok := group.FindResource(action)
	if !ok {
		return SkippedNoResource, nil
	}

	if blueprint.Excluded(xc.ResponseStatus) {
		return SkippedStatus, nil
	}

	resourceComment, _, err := r.extractor.ResourceComment(resource)
	if err != nil {
		return Failed, err
	}

	actionComment, err := r.extractor.ActionComment(action)
	if err != nil {
		return Failed, err
	}

	err = r.writer.Append(blueprint.Entry{
		Exchange:        xc,
		ResourceKey:     inflect.Underscore(resource.Capture),
		ResourceName:    resource.Capture,
		ActionHeader:    action.Capture,
		Description:     ex.Description,
		ResourceComment: resourceComment,
		ActionComment:   actionComment,
	})
	if err != nil {
		return Failed, err
	}

	return Written, nil
}

// Observe is [Run.Record] for use inside a test. Failures are reported with
// tb.Logf and the run's logger but never fail the test. An empty
// description defaults to the last element of the test name.
func (r *Run) Observe(tb testing.TB, ex Example, xc *blueprint.Exchange) Result {
	tb.Helper()

	if ex.Description == "" {
		ex.Description = testDescription(tb.Name())
	}

	res, err := r.Record(ex, xc)
	if err != nil {
		tb.Logf("api docs: %v", err)
		r.logger.Error("document example",
			slog.String("test", tb.Name()),
			slog.Any("error", err),
		)
	}

	return res
}

// testDescription turns "TestWidgets/lists_widgets" into "lists widgets".
func testDescription(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	return strings.ReplaceAll(name, "_", " ")
}

func describe(ex Example) string {
	if ex.Group == nil {
		return ex.Description
	}

	return ex.Group.String() + " > " + ex.Description
}
