package model

import (
	"fmt"
	"math/bits"
	"strings"

	"gopkg.in/yaml.v3"
)

// ElementType identifies the value type of a configuration element.
// The numeric value is the code the RCI runtime uses on the wire and in the
// generated tables; it never changes between configurations.
type ElementType uint8

// Element types. Codes that are absent (10, 16-21) are reserved by the runtime.
const (
	TypeString          ElementType = 1
	TypeMultilineString ElementType = 2
	TypePassword        ElementType = 3
	TypeInt32           ElementType = 4
	TypeUint32          ElementType = 5
	TypeHex32           ElementType = 6
	TypeXHex32          ElementType = 7
	TypeFloat           ElementType = 8
	TypeEnum            ElementType = 9
	TypeOnOff           ElementType = 11
	TypeBoolean         ElementType = 12
	TypeIPv4            ElementType = 13
	TypeFQDNv4          ElementType = 14
	TypeFQDNv6          ElementType = 15
	TypeDateTime        ElementType = 22
)

// allElementTypes is the catalog in code order.
var allElementTypes = []ElementType{
	TypeString,
	TypeMultilineString,
	TypePassword,
	TypeInt32,
	TypeUint32,
	TypeHex32,
	TypeXHex32,
	TypeFloat,
	TypeEnum,
	TypeOnOff,
	TypeBoolean,
	TypeIPv4,
	TypeFQDNv4,
	TypeFQDNv6,
	TypeDateTime,
}

var elementTypeNames = map[ElementType]string{
	TypeString:          "string",
	TypeMultilineString: "multiline_string",
	TypePassword:        "password",
	TypeInt32:           "int32",
	TypeUint32:          "uint32",
	TypeHex32:           "hex32",
	TypeXHex32:          "0x_hex32",
	TypeFloat:           "float",
	TypeEnum:            "enum",
	TypeOnOff:           "on_off",
	TypeBoolean:         "boolean",
	TypeIPv4:            "ipv4",
	TypeFQDNv4:          "fqdnv4",
	TypeFQDNv6:          "fqdnv6",
	TypeDateTime:        "datetime",
}

// elementTypeAliases maps alternative spellings accepted in definition files.
var elementTypeAliases = map[string]ElementType{
	"x_hex32":   TypeXHex32,
	"bool":      TypeBoolean,
	"multiline": TypeMultilineString,
	"date_time": TypeDateTime,
}

// AllElementTypes returns every element type in code order.
func AllElementTypes() []ElementType {
	out := make([]ElementType, len(allElementTypes))
	copy(out, allElementTypes)
	return out
}

// Code returns the stable numeric code of the type.
func (t ElementType) Code() int { return int(t) }

// String returns the canonical lowercase name.
func (t ElementType) String() string {
	if name, ok := elementTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ElementType(%d)", uint8(t))
}

// Valid reports whether t is part of the catalog.
func (t ElementType) Valid() bool {
	_, ok := elementTypeNames[t]
	return ok
}

// IsStringFamily reports whether values of t are carried as text.
func (t ElementType) IsStringFamily() bool {
	switch t {
	case TypeString, TypeMultilineString, TypePassword,
		TypeIPv4, TypeFQDNv4, TypeFQDNv6, TypeDateTime:
		return true
	}
	return false
}

// ParseElementType parses a canonical type name or one of its aliases.
func ParseElementType(s string) (ElementType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range elementTypeNames {
		if n == name {
			return t, nil
		}
	}
	if t, ok := elementTypeAliases[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown element type %q", s)
}

// UnmarshalYAML decodes a type name.
func (t *ElementType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseElementType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes the canonical type name.
func (t ElementType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// TypeSet is an immutable set of element types.
type TypeSet uint32

// NewTypeSet returns a set holding the given types.
func NewTypeSet(types ...ElementType) TypeSet {
	var s TypeSet
	for _, t := range types {
		s = s.Add(t)
	}
	return s
}

// Add returns a copy of s that also contains t.
func (s TypeSet) Add(t ElementType) TypeSet { return s | 1<<uint(t) }

// Has reports whether t is in s.
func (s TypeSet) Has(t ElementType) bool { return s&(1<<uint(t)) != 0 }

// Len returns the number of types in s.
func (s TypeSet) Len() int { return bits.OnesCount32(uint32(s)) }

// Types returns the members of s in code order.
func (s TypeSet) Types() []ElementType {
	var out []ElementType
	for _, t := range allElementTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// ActiveTypes returns the set of element types used by at least one element
// of m. It is recomputed from the model on every call.
func ActiveTypes(m *ConfigModel) TypeSet {
	var s TypeSet
	for _, kind := range AllCategories() {
		for _, g := range m.Groups(kind) {
			for _, e := range g.Elements {
				s = s.Add(e.Type)
			}
		}
	}
	return s
}
