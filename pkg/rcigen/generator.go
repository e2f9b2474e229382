package rcigen

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/rci-tools/rcigen/pkg/log"
	"github.com/rci-tools/rcigen/pkg/model"
)

// Rendered is the text of one artifact.
type Rendered struct {
	Kind Artifact
	Name string
	Text string
}

// Result is the outcome of a generation run.
type Result struct {
	RunID     string
	Plan      *Plan
	Artifacts []Rendered
}

// Artifact returns the rendered artifact of the given kind.
func (r *Result) Artifact(kind Artifact) (Rendered, bool) {
	for _, a := range r.Artifacts {
		if a.Kind == kind {
			return a, true
		}
	}
	return Rendered{}, false
}

// GeneratorConfig configures a Generator.
type GeneratorConfig struct {
	// Logger receives plan, artifact and error events (optional).
	Logger log.Logger

	// Source names the model the runs are generated from (optional).
	Source string

	// Arguments is the invocation recorded in the artifact banners (optional).
	Arguments string
}

// Generator runs generations and reports them to a log.Logger.
// A Generator holds no state between runs.
type Generator struct {
	logger    log.Logger
	source    string
	arguments string
}

// NewGenerator creates a Generator.
func NewGenerator(config GeneratorConfig) *Generator {
	g := &Generator{source: config.Source, arguments: config.Arguments}
	g.SetLogger(config.Logger)
	return g
}

// SetLogger replaces the event logger. A nil logger disables events.
func (g *Generator) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	g.logger = logger
}

// Generate plans a run and renders every artifact it produces, definitions
// before data.
func (g *Generator) Generate(m *model.ConfigModel, opts Options) (*Result, error) {
	run := g.newRun()

	p, err := NewPlan(m, opts)
	if err != nil {
		run.fail(log.StagePlan, err)
		return nil, err
	}
	p.Arguments = g.arguments
	run.planned(p)

	res := &Result{RunID: run.id, Plan: p}
	for _, a := range p.Artifacts() {
		text, err := p.Render(a)
		if err != nil {
			run.fail(log.StageRender, err)
			return nil, err
		}
		r := Rendered{Kind: a, Name: a.FileName(), Text: text}
		res.Artifacts = append(res.Artifacts, r)
		run.artifact(log.StageRender, r)
	}
	return res, nil
}

// WriteCombined generates the combined header and writes it to w. The
// output mode of opts is ignored.
func (g *Generator) WriteCombined(w io.Writer, m *model.ConfigModel, opts Options) error {
	opts.Mode = ModeCombined
	res, err := g.Generate(m, opts)
	if err != nil {
		return err
	}
	return g.write(res, map[Artifact]io.Writer{ArtifactCombined: w})
}

// WriteSplit generates the definitions and data artifacts and writes them to
// defs and data, in that order. Only the sink of Target is needed when a
// target is set.
func (g *Generator) WriteSplit(defs, data io.Writer, m *model.ConfigModel, opts Options) error {
	opts.Mode = ModeSplit
	res, err := g.Generate(m, opts)
	if err != nil {
		return err
	}
	return g.write(res, map[Artifact]io.Writer{ArtifactDefinitions: defs, ArtifactData: data})
}

func (g *Generator) write(res *Result, sinks map[Artifact]io.Writer) error {
	run := g.resume(res.RunID)
	for _, r := range res.Artifacts {
		if sinks[r.Kind] == nil {
			err := fmt.Errorf("%w: no sink for %s artifact", ErrSink, r.Kind)
			run.fail(log.StageWrite, err)
			return err
		}
	}
	for _, r := range res.Artifacts {
		if _, err := io.WriteString(sinks[r.Kind], r.Text); err != nil {
			err = fmt.Errorf("%w: writing %s: %w", ErrSink, r.Name, err)
			run.fail(log.StageWrite, err)
			return err
		}
		run.artifact(log.StageWrite, r)
	}
	return nil
}

// run reports the events of one generation run.
type run struct {
	id     string
	source string
	logger log.Logger
}

func (g *Generator) newRun() *run {
	return g.resume(uuid.NewString())
}

func (g *Generator) resume(id string) *run {
	return &run{id: id, source: g.source, logger: g.logger}
}

func (r *run) event(stage log.Stage, cat log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		RunID:     r.id,
		Stage:     stage,
		Category:  cat,
		Source:    r.source,
	}
}

func (r *run) planned(p *Plan) {
	ev := r.event(log.StagePlan, log.CategoryPlan)
	ev.Plan = &log.PlanEvent{
		Records:      len(p.Layout.Records),
		Union:        p.Layout.Union,
		Groups:       p.GroupCount(),
		RCIErrors:    len(p.Numbering.RCI),
		GlobalErrors: len(p.Numbering.Global),
	}
	for _, t := range p.Active.Types() {
		ev.Plan.ActiveTypes = append(ev.Plan.ActiveTypes, t.String())
	}
	if p.Pool != nil {
		ev.Plan.PoolSize = p.Pool.Size
	}
	r.logger.Log(ev)
}

func (r *run) artifact(stage log.Stage, a Rendered) {
	ev := r.event(stage, log.CategoryArtifact)
	ev.Artifact = &log.ArtifactEvent{
		Name: a.Name,
		Kind: a.Kind.String(),
		Size: len(a.Text),
	}
	r.logger.Log(ev)
}

func (r *run) fail(stage log.Stage, err error) {
	ev := r.event(stage, log.CategoryError)
	ev.Error = &log.ErrorEventData{
		Stage:   stage,
		Message: err.Error(),
		Kind:    ErrorKind(err),
	}
	r.logger.Log(ev)
}

// ErrorKind classifies a generation error as model, options, sink or other.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrModelIntegrity):
		return "model"
	case errors.Is(err, ErrOptionConflict):
		return "options"
	case errors.Is(err, ErrSink):
		return "sink"
	default:
		return "other"
	}
}

var defaultGenerator = NewGenerator(GeneratorConfig{})

// Generate renders every artifact of a run without logging.
func Generate(m *model.ConfigModel, opts Options) (*Result, error) {
	return defaultGenerator.Generate(m, opts)
}

// WriteCombined writes the combined header to w without logging.
func WriteCombined(w io.Writer, m *model.ConfigModel, opts Options) error {
	return defaultGenerator.WriteCombined(w, m, opts)
}

// WriteSplit writes the definitions and data artifacts without logging.
func WriteSplit(defs, data io.Writer, m *model.ConfigModel, opts Options) error {
	return defaultGenerator.WriteSplit(defs, data, m, opts)
}
