package rcigen

import (
	"fmt"
	"strings"

	"github.com/rci-tools/rcigen/pkg/model"
)

const (
	callbackStatus = "connector_callback_status_t"
	infoParam      = "rci_info_t * const info"
)

// ParamType returns the C value type of the accessors of element e in group
// g of category kind.
func ParamType(prefix string, kind model.CategoryKind, g string, e model.Element) string {
	switch RecordFor(e.Type) {
	case RecordUnsigned:
		return "uint32_t"
	case RecordSigned:
		return "int32_t"
	case RecordFloat:
		return "float"
	case RecordString:
		return "char const *"
	case RecordCountable:
		switch e.Type {
		case model.TypeOnOff:
			return "connector_on_off_t"
		case model.TypeBoolean:
			return "connector_bool_t"
		default:
			return prefix + "connector_" + groupSymbol(kind, g) + "_" + e.Name + "_id_t"
		}
	}
	panic(fmt.Sprintf("rcigen: no parameter type for element type %s", e.Type))
}

// writePrototypes declares the session, group and element callbacks. Setters
// of read-only elements and getters of passwords are bound to NULL instead.
func writePrototypes(b *strings.Builder, p *Plan) {
	prefix := p.Options.Prefix

	b.WriteString("\n")
	fmt.Fprintf(b, "%s %srci_session_start_cb(%s);\n", callbackStatus, prefix, infoParam)
	fmt.Fprintf(b, "%s %srci_session_end_cb(%s);\n", callbackStatus, prefix, infoParam)

	for _, kind := range model.AllCategories() {
		for _, g := range p.Model.Groups(kind) {
			b.WriteString("\n")
			fmt.Fprintf(b, "%s %s(%s);\n", callbackStatus, callbackSymbol(prefix, kind, g.Name, "start"), infoParam)
			fmt.Fprintf(b, "%s %s(%s);\n", callbackStatus, callbackSymbol(prefix, kind, g.Name, "end"), infoParam)

			for _, e := range g.Elements {
				param := ParamType(prefix, kind, g.Name, e)

				get := GetCallback(prefix, kind, g.Name, e.Name)
				if e.Type == model.TypePassword {
					fmt.Fprintf(b, "#define %s    NULL\n", get)
				} else {
					fmt.Fprintf(b, "%s %s(%s, %s * const value);\n", callbackStatus, get, infoParam, param)
				}

				set := SetCallback(prefix, kind, g.Name, e.Name)
				if e.ReadOnly() {
					fmt.Fprintf(b, "#define %s    NULL\n", set)
				} else {
					fmt.Fprintf(b, "%s %s(%s, %s const value);\n", callbackStatus, set, infoParam, param)
				}
			}
		}
	}

	fmt.Fprintf(b, "\nextern connector_remote_config_data_t %s;\n", descDataSymbol)
}
