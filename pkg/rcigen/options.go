package rcigen

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rci-tools/rcigen/pkg/model"
)

// NamingVerbosity selects which names are emitted as literal strings in the
// descriptor tables. Names that are not emitted appear as comments only.
type NamingVerbosity uint8

const (
	NamingNone NamingVerbosity = iota
	NamingElements
	NamingGroups
	NamingAll
)

var namingNames = map[NamingVerbosity]string{
	NamingNone:     "none",
	NamingElements: "elements",
	NamingGroups:   "groups",
	NamingAll:      "all",
}

// String returns the option value name.
func (n NamingVerbosity) String() string {
	if s, ok := namingNames[n]; ok {
		return s
	}
	return fmt.Sprintf("NamingVerbosity(%d)", uint8(n))
}

// ElementNames reports whether element names are emitted.
func (n NamingVerbosity) ElementNames() bool { return n == NamingElements || n == NamingAll }

// GroupNames reports whether group names are emitted.
func (n NamingVerbosity) GroupNames() bool { return n == NamingGroups || n == NamingAll }

// ParseNamingVerbosity parses none, elements, groups or all.
func ParseNamingVerbosity(s string) (NamingVerbosity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for n, v := range namingNames {
		if v == name {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown naming verbosity %q", ErrOptionConflict, s)
}

// UnmarshalYAML decodes a naming verbosity name.
func (n *NamingVerbosity) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, ParseNamingVerbosity, n)
}

// MarshalYAML encodes the name.
func (n NamingVerbosity) MarshalYAML() (any, error) { return n.String(), nil }

// OutputMode selects between one combined artifact and a definitions/data pair.
type OutputMode uint8

const (
	ModeCombined OutputMode = iota
	ModeSplit
)

// String returns the option value name.
func (m OutputMode) String() string {
	switch m {
	case ModeCombined:
		return "combined"
	case ModeSplit:
		return "split"
	default:
		return fmt.Sprintf("OutputMode(%d)", uint8(m))
	}
}

// ParseOutputMode parses combined or split.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "combined":
		return ModeCombined, nil
	case "split":
		return ModeSplit, nil
	default:
		return 0, fmt.Errorf("%w: unknown output mode %q", ErrOptionConflict, s)
	}
}

// UnmarshalYAML decodes an output mode name.
func (m *OutputMode) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, ParseOutputMode, m)
}

// MarshalYAML encodes the name.
func (m OutputMode) MarshalYAML() (any, error) { return m.String(), nil }

// Artifact identifies one output artifact.
type Artifact uint8

const (
	// ArtifactNone as a target means every artifact of the mode.
	ArtifactNone Artifact = iota
	ArtifactDefinitions
	ArtifactData
	// ArtifactCombined is the single header of combined mode. It is never
	// a valid target.
	ArtifactCombined
)

// File names of the artifacts.
const (
	CombinedFileName    = "remote_config.h"
	DefinitionsFileName = "rci_config.h"
	DataFileName        = "rci_config.c"
)

// String returns the artifact kind name.
func (a Artifact) String() string {
	switch a {
	case ArtifactNone:
		return "none"
	case ArtifactDefinitions:
		return "definitions"
	case ArtifactData:
		return "data"
	case ArtifactCombined:
		return "combined"
	default:
		return fmt.Sprintf("Artifact(%d)", uint8(a))
	}
}

// FileName returns the conventional file name of the artifact.
func (a Artifact) FileName() string {
	switch a {
	case ArtifactDefinitions:
		return DefinitionsFileName
	case ArtifactData:
		return DataFileName
	case ArtifactCombined:
		return CombinedFileName
	default:
		return ""
	}
}

// ParseArtifact parses a target artifact: none, definitions or data.
func ParseArtifact(s string) (Artifact, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ArtifactNone, nil
	case "definitions", "header":
		return ArtifactDefinitions, nil
	case "data", "source":
		return ArtifactData, nil
	default:
		return 0, fmt.Errorf("%w: unknown target artifact %q", ErrOptionConflict, s)
	}
}

// UnmarshalYAML decodes a target artifact name.
func (a *Artifact) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, ParseArtifact, a)
}

// MarshalYAML encodes the name.
func (a Artifact) MarshalYAML() (any, error) { return a.String(), nil }

func decodeEnum[T any](node *yaml.Node, parse func(string) (T, error), out *T) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*out = v
	return nil
}

// Options configures one generation run.
type Options struct {
	// ErrorDescriptions emits the string pool and the error description
	// arrays. Error codes are emitted either way.
	ErrorDescriptions bool `yaml:"error_descriptions"`

	// Naming selects which names appear as literal strings.
	Naming NamingVerbosity `yaml:"naming"`

	// Mode selects combined or split output.
	Mode OutputMode `yaml:"mode"`

	// FirmwareVersion is published as FIRMWARE_TARGET_ZERO_VERSION.
	FirmwareVersion uint32 `yaml:"firmware_version"`

	// Prefix is prepended to typedef, table and callback symbols.
	Prefix string `yaml:"prefix"`

	// Target restricts split output to one artifact.
	Target Artifact `yaml:"target"`

	// VendorID and DeviceType are stored in rci_desc_data.
	VendorID   uint32 `yaml:"vendor_id"`
	DeviceType string `yaml:"device_type"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ErrorDescriptions: true,
		Naming:            NamingNone,
		Mode:              ModeCombined,
	}
}

// Validate rejects option values and combinations that cannot be generated.
func (o Options) Validate() error {
	if _, ok := namingNames[o.Naming]; !ok {
		return fmt.Errorf("%w: naming verbosity %d", ErrOptionConflict, o.Naming)
	}
	switch o.Mode {
	case ModeCombined:
		if o.Target != ArtifactNone {
			return fmt.Errorf("%w: target %s requires split mode", ErrOptionConflict, o.Target)
		}
	case ModeSplit:
		switch o.Target {
		case ArtifactNone, ArtifactDefinitions, ArtifactData:
		default:
			return fmt.Errorf("%w: target %s is not a split artifact", ErrOptionConflict, o.Target)
		}
	default:
		return fmt.Errorf("%w: output mode %d", ErrOptionConflict, o.Mode)
	}
	if o.Prefix != "" && !model.IsIdentifier(o.Prefix) {
		return fmt.Errorf("%w: prefix %q is not a C identifier", ErrOptionConflict, o.Prefix)
	}
	return nil
}

// ParseOptions decodes YAML options on top of DefaultOptions.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptions reads and decodes an options file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return ParseOptions(data)
}
