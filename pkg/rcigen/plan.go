package rcigen

import (
	"fmt"

	"github.com/rci-tools/rcigen/pkg/model"
)

// Plan holds every fact derived from a model for one generation run. All
// artifacts of the run are rendered from the same Plan.
type Plan struct {
	Model   *model.ConfigModel
	Options Options

	Active    model.TypeSet
	Layout    Layout
	Numbering Numbering

	// Pool is nil when error descriptions are disabled.
	Pool *Pool

	// ElementNameSize and GroupNameSize are the widths of the name fields,
	// terminator included.
	ElementNameSize int
	GroupNameSize   int

	// Arguments is recorded in the artifact banners when set.
	Arguments string
}

// NewPlan validates the options and the model, derives the plan and rejects
// models whose emitted C symbols would collide.
func NewPlan(m *model.ConfigModel, opts Options) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	p := &Plan{
		Model:     m,
		Options:   opts,
		Active:    model.ActiveTypes(m),
		Numbering: AllocateErrorCodes(m),
	}
	p.Layout = SynthesizeLayout(p.Active)
	p.Numbering.check()

	if opts.ErrorDescriptions {
		p.Pool = EncodePool(CollectPoolEntries(m))
	}

	for _, kind := range model.AllCategories() {
		for _, g := range m.Groups(kind) {
			p.GroupNameSize = max(p.GroupNameSize, len(g.Name)+1)
			for _, e := range g.Elements {
				p.ElementNameSize = max(p.ElementNameSize, len(e.Name)+1)
			}
		}
	}

	if err := checkSymbols(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Split reports whether the plan renders the definitions/data pair.
func (p *Plan) Split() bool { return p.Options.Mode == ModeSplit }

// Artifacts lists the artifacts the plan renders, definitions before data.
func (p *Plan) Artifacts() []Artifact {
	if !p.Split() {
		return []Artifact{ArtifactCombined}
	}
	switch p.Options.Target {
	case ArtifactDefinitions:
		return []Artifact{ArtifactDefinitions}
	case ArtifactData:
		return []Artifact{ArtifactData}
	default:
		return []Artifact{ArtifactDefinitions, ArtifactData}
	}
}

// GroupCount returns the number of groups across all categories.
func (p *Plan) GroupCount() int {
	n := 0
	for _, kind := range model.AllCategories() {
		n += len(p.Model.Groups(kind))
	}
	return n
}

// Render renders one artifact.
func (p *Plan) Render(a Artifact) (string, error) {
	switch a {
	case ArtifactCombined:
		if p.Split() {
			return "", fmt.Errorf("%w: combined artifact requested in split mode", ErrOptionConflict)
		}
		return renderCombined(p), nil
	case ArtifactDefinitions:
		if !p.Split() {
			return "", fmt.Errorf("%w: definitions artifact requested in combined mode", ErrOptionConflict)
		}
		return renderDefinitions(p), nil
	case ArtifactData:
		if !p.Split() {
			return "", fmt.Errorf("%w: data artifact requested in combined mode", ErrOptionConflict)
		}
		return renderData(p), nil
	default:
		return "", fmt.Errorf("%w: unknown artifact %s", ErrOptionConflict, a)
	}
}
