package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AccessMode controls whether a remote party may write an element.
type AccessMode uint8

const (
	// AccessReadWrite allows reading and writing. It is the default.
	AccessReadWrite AccessMode = iota

	// AccessReadOnly allows reading only.
	AccessReadOnly
)

// String returns the runtime symbol suffix for the access mode.
func (a AccessMode) String() string {
	switch a {
	case AccessReadOnly:
		return "read_only"
	case AccessReadWrite:
		return "read_write"
	default:
		return "UNKNOWN"
	}
}

// ParseAccessMode parses "read_only" or "read_write". An empty string is read_write.
func ParseAccessMode(s string) (AccessMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "read_write", "readwrite":
		return AccessReadWrite, nil
	case "read_only", "readonly":
		return AccessReadOnly, nil
	default:
		return 0, fmt.Errorf("unknown access mode %q", s)
	}
}

// UnmarshalYAML decodes an access mode name.
func (a *AccessMode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAccessMode(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// EnumValue is one entry of an enumerated element. An empty Name reserves the
// numeric slot without producing a symbol.
type EnumValue struct {
	Name string `yaml:"name"`
}

// UnmarshalYAML accepts either a bare string or a mapping with a name key.
func (v *EnumValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&v.Name)
	}
	type plain EnumValue
	return node.Decode((*plain)(v))
}

// Element is a single named, typed configuration value.
type Element struct {
	Name   string      `yaml:"name"`
	Type   ElementType `yaml:"type"`
	Access AccessMode  `yaml:"access"`
	Values []EnumValue `yaml:"values"`
}

// ReadOnly reports whether the element rejects writes.
func (e *Element) ReadOnly() bool { return e.Access == AccessReadOnly }

// ErrorEntry is one error key with its human-readable description.
// A nil Description is encoded as an empty pool entry.
type ErrorEntry struct {
	Key         string
	Description *string
}

// ErrorMap is an ordered mapping of error keys to descriptions.
type ErrorMap []ErrorEntry

// Len returns the number of entries.
func (m ErrorMap) Len() int { return len(m) }

// Keys returns the error keys in declaration order.
func (m ErrorMap) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Lookup returns the entry for key.
func (m ErrorMap) Lookup(key string) (ErrorEntry, bool) {
	for _, e := range m {
		if e.Key == key {
			return e, true
		}
	}
	return ErrorEntry{}, false
}

// UnmarshalYAML decodes a YAML mapping preserving key order.
func (m *ErrorMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: error map must be a mapping", node.Line)
	}
	out := make(ErrorMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		entry := ErrorEntry{Key: k.Value}
		if !(v.Kind == yaml.ScalarNode && v.Tag == "!!null") {
			var desc string
			if err := v.Decode(&desc); err != nil {
				return fmt.Errorf("line %d: error %q: %w", v.Line, k.Value, err)
			}
			entry.Description = &desc
		}
		out = append(out, entry)
	}
	*m = out
	return nil
}

// Group is a named collection of elements that may exist in several instances.
type Group struct {
	Name      string    `yaml:"name"`
	Instances int       `yaml:"instances"`
	Elements  []Element `yaml:"elements"`
	Errors    ErrorMap  `yaml:"errors"`
}

// CategoryKind is one of the fixed top-level partitions of the configuration.
type CategoryKind uint8

const (
	// CategorySetting holds writable device settings.
	CategorySetting CategoryKind = iota

	// CategoryState holds device state.
	CategoryState

	categoryCount
)

// AllCategories returns the category kinds in table order.
func AllCategories() []CategoryKind {
	return []CategoryKind{CategorySetting, CategoryState}
}

// String returns the lowercase category name used in generated symbols.
func (k CategoryKind) String() string {
	switch k {
	case CategorySetting:
		return "setting"
	case CategoryState:
		return "state"
	default:
		return "UNKNOWN"
	}
}

// Category owns the groups of one partition.
type Category struct {
	Kind   CategoryKind
	Groups []Group
}

// ConfigModel is the finalized configuration definition consumed by the generator.
type ConfigModel struct {
	Categories   [categoryCount]Category
	RCIErrors    ErrorMap
	GlobalErrors ErrorMap
}

// NewConfigModel returns an empty model with the given protocol errors.
func NewConfigModel(rciErrors ErrorMap) *ConfigModel {
	m := &ConfigModel{RCIErrors: rciErrors}
	for _, kind := range AllCategories() {
		m.Categories[kind].Kind = kind
	}
	return m
}

// Category returns the category of the given kind.
func (m *ConfigModel) Category(kind CategoryKind) *Category {
	return &m.Categories[kind]
}

// Groups returns the groups of a category in declaration order.
func (m *ConfigModel) Groups(kind CategoryKind) []Group {
	return m.Categories[kind].Groups
}

// AddGroup appends a group to a category. Instances defaults to 1.
func (m *ConfigModel) AddGroup(kind CategoryKind, g Group) {
	if g.Instances == 0 {
		g.Instances = 1
	}
	m.Categories[kind].Kind = kind
	m.Categories[kind].Groups = append(m.Categories[kind].Groups, g)
}

// Describe returns a pointer to s, for building error maps in code.
func Describe(s string) *string { return &s }

// DefaultRCIErrors returns the baseline protocol errors every runtime defines.
func DefaultRCIErrors() ErrorMap {
	return ErrorMap{
		{Key: "bad_command", Description: Describe("Bad command")},
		{Key: "bad_descriptor", Description: Describe("Bad configuration")},
	}
}
