package rcigen

import (
	"fmt"
	"strings"

	"github.com/rci-tools/rcigen/pkg/model"
)

// RecordKind is a storage representation shared by one or more element types.
type RecordKind uint8

const (
	RecordUnsigned RecordKind = iota
	RecordSigned
	RecordFloat
	RecordCountable
	RecordString
)

// String returns the record name.
func (k RecordKind) String() string {
	switch k {
	case RecordUnsigned:
		return "unsigned"
	case RecordSigned:
		return "signed"
	case RecordFloat:
		return "float"
	case RecordCountable:
		return "countable"
	case RecordString:
		return "string"
	default:
		return fmt.Sprintf("RecordKind(%d)", uint8(k))
	}
}

// RecordFor returns the record that stores values of t.
func RecordFor(t model.ElementType) RecordKind {
	switch t {
	case model.TypeUint32, model.TypeHex32, model.TypeXHex32:
		return RecordUnsigned
	case model.TypeInt32:
		return RecordSigned
	case model.TypeFloat:
		return RecordFloat
	case model.TypeEnum, model.TypeOnOff, model.TypeBoolean:
		return RecordCountable
	case model.TypeString, model.TypeMultilineString, model.TypePassword,
		model.TypeIPv4, model.TypeFQDNv4, model.TypeFQDNv6, model.TypeDateTime:
		return RecordString
	}
	panic(fmt.Sprintf("rcigen: no record for element type %s", t))
}

// auxTypedef is the range or length record of the kind.
func (k RecordKind) auxTypedef() string {
	switch k {
	case RecordUnsigned:
		return "\ntypedef struct {\n   uint32_t min_value;\n   uint32_t max_value;\n} connector_element_value_unsigned_integer_t;\n"
	case RecordSigned:
		return "\ntypedef struct {\n   int32_t min_value;\n   int32_t max_value;\n} connector_element_value_signed_integer_t;\n"
	case RecordFloat:
		return "\ntypedef struct {\n    float min_value;\n    float max_value;\n} connector_element_value_float_t;\n"
	case RecordCountable:
		return "\ntypedef struct {\n    size_t count;\n} connector_element_value_enum_t;\n"
	case RecordString:
		return "\ntypedef struct {\n    size_t min_length_in_bytes;\n    size_t max_length_in_bytes;\n} connector_element_value_string_t;\n"
	}
	panic(fmt.Sprintf("rcigen: unknown record kind %d", k))
}

// Field returns the value-holder member declaration of the kind.
func (k RecordKind) Field() string {
	switch k {
	case RecordUnsigned:
		return "uint32_t unsigned_integer_value"
	case RecordSigned:
		return "int32_t signed_integer_value"
	case RecordFloat:
		return "float float_value"
	case RecordCountable:
		return "unsigned int enum_value"
	case RecordString:
		return "char const * string_value"
	}
	panic(fmt.Sprintf("rcigen: unknown record kind %d", k))
}

// Layout is the shape of connector_element_value_t.
type Layout struct {
	// Records in the order their first element type appears in the catalog.
	Records []RecordKind

	// Union is set when more than one record is needed.
	Union bool
}

// SynthesizeLayout derives the value-holder layout from the active types.
func SynthesizeLayout(active model.TypeSet) Layout {
	var l Layout
	seen := make(map[RecordKind]bool)
	for _, t := range active.Types() {
		k := RecordFor(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		l.Records = append(l.Records, k)
	}
	l.Union = len(l.Records) > 1
	return l
}

// Has reports whether the layout contains k.
func (l Layout) Has(k RecordKind) bool {
	for _, r := range l.Records {
		if r == k {
			return true
		}
	}
	return false
}

// writeValueRecords emits the auxiliary records and the value holder. A model
// without elements still gets a value holder so the descriptor types compile.
func writeValueRecords(b *strings.Builder, l Layout) {
	for _, k := range l.Records {
		b.WriteString(k.auxTypedef())
	}

	keyword := "struct"
	if l.Union {
		keyword = "union"
	}
	fmt.Fprintf(b, "\n\ntypedef %s {\n", keyword)
	if len(l.Records) == 0 {
		fmt.Fprintf(b, "    %s;\n", RecordString.Field())
	}
	for _, k := range l.Records {
		fmt.Fprintf(b, "    %s;\n", k.Field())
	}
	b.WriteString("} connector_element_value_t;\n")
}
