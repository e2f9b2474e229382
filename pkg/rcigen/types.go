package rcigen

import (
	"fmt"
	"strings"

	"github.com/rci-tools/rcigen/pkg/model"
)

const parserUses = "RCI_PARSER_USES_"

// TypeSymbol returns the connector_element_value_type_t enumerator of t.
func TypeSymbol(t model.ElementType) string {
	return "connector_element_type_" + t.String()
}

// FeatureDefine returns the parser feature flag of t.
func FeatureDefine(t model.ElementType) string {
	return parserUses + strings.ToUpper(t.String())
}

// writeFeatureDefines emits one flag per active type followed by the flags
// of the shared unsigned and string parsers.
func writeFeatureDefines(b *strings.Builder, p *Plan) {
	b.WriteString("\n")
	if p.Options.ErrorDescriptions {
		b.WriteString("#define " + parserUses + "ERROR_DESCRIPTIONS\n")
	}
	for _, t := range p.Active.Types() {
		fmt.Fprintf(b, "#define %s\n", FeatureDefine(t))
	}
	if p.Layout.Has(RecordUnsigned) {
		b.WriteString("#define " + parserUses + "UNSIGNED_INTEGER\n")
	}
	if p.Layout.Has(RecordString) {
		b.WriteString("#define " + parserUses + "STRINGS\n")
	}
	if p.Active.Has(model.TypeFloat) {
		b.WriteString("\n#include \"float.h\"\n")
	}
}

func writeOnOffEnum(b *strings.Builder, active model.TypeSet) {
	if !active.Has(model.TypeOnOff) {
		return
	}
	b.WriteString("\ntypedef enum {\n    connector_off,\n    connector_on\n} connector_on_off_t;\n")
}

// writeTypeEnum emits the active types with their catalog codes. An explicit
// value follows every gap in the code sequence.
func writeTypeEnum(b *strings.Builder, active model.TypeSet) {
	b.WriteString("\n\ntypedef enum {\n")
	types := active.Types()
	if len(types) == 0 {
		b.WriteString("    connector_element_type_none\n")
	}
	prev := -1
	for i, t := range types {
		fmt.Fprintf(b, "    %s", TypeSymbol(t))
		if t.Code() != prev+1 {
			fmt.Fprintf(b, " = %d", t.Code())
		}
		prev = t.Code()
		if i < len(types)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("} connector_element_value_type_t;\n")
}
