package rcigen

import (
	"fmt"
	"strings"

	"github.com/rci-tools/rcigen/pkg/model"
)

const (
	groupTableSymbol = "connector_group_table"
	rciErrorsSymbol  = "connector_rci_errors"
	descDataSymbol   = "rci_desc_data"
	functionCast     = "(rci_function_t)"
)

const rciInfoTypedef = `
typedef struct rci_data {
 unsigned int group_index;
 connector_remote_action_t action;
 connector_remote_group_type_t group_type;
 char const * error_hint;
 void * user_context;
} rci_info_t;

typedef connector_callback_status_t (*rci_function_t)(rci_info_t * const info, ...);
`

const remoteTypedefs = `
typedef struct {
  connector_remote_group_type_t type;
  unsigned int id;
  unsigned int index;
} connector_remote_group_t;

typedef struct {
  unsigned int id;
  connector_element_value_type_t type;
  connector_element_value_t * value;
} connector_remote_element_t;

typedef struct {
  void * user_context;
  connector_remote_action_t CONST action;
  connector_remote_group_t CONST group;
  connector_remote_element_t CONST element;
  unsigned int error_id;

  union {
      char const * error_hint;
      connector_element_value_t * element_value;
  } response;
} connector_remote_config_t;

typedef struct {
  void * user_context;
} connector_remote_config_cancel_t;

typedef struct connector_remote_group_table {
  connector_group_t CONST * groups;
  size_t count;
} connector_remote_group_table_t;

typedef struct {
 connector_remote_group_table_t CONST * group_table;
 char CONST * CONST * error_table;
 unsigned int CONST global_error_count;
 uint32_t CONST firmware_target_zero_version;
 uint32_t CONST vendor_id;
 char const * CONST device_type;
 rci_function_t session_start_cb;
 rci_function_t session_end_cb;
} connector_remote_config_data_t;
`

// groupSymbol returns the lowercase <category>_<group> stem of per-group symbols.
func groupSymbol(kind model.CategoryKind, group string) string {
	return kind.String() + "_" + group
}

// idStem returns the connector_<category>_<group> stem of per-group
// enumerators.
func idStem(kind model.CategoryKind, group string) string {
	return "connector_" + groupSymbol(kind, group)
}

func groupErrorBase(kind model.CategoryKind, group string) string {
	return idStem(kind, group) + "_error"
}

func categoryStem(kind model.CategoryKind) string {
	return "connector_" + kind.String()
}

func callbackSymbol(prefix string, kind model.CategoryKind, group, suffix string) string {
	return prefix + "rci_" + groupSymbol(kind, group) + "_" + suffix
}

// GetCallback names the read accessor of an element.
func GetCallback(prefix string, kind model.CategoryKind, group, element string) string {
	return callbackSymbol(prefix, kind, group, element+"_get")
}

// SetCallback names the write accessor of an element.
func SetCallback(prefix string, kind model.CategoryKind, group, element string) string {
	return callbackSymbol(prefix, kind, group, element+"_set")
}

func elementsSymbol(prefix string, kind model.CategoryKind, group string) string {
	return prefix + groupSymbol(kind, group) + "_elements"
}

func errorsSymbol(prefix string, kind model.CategoryKind, group string) string {
	return prefix + groupSymbol(kind, group) + "_errors"
}

func groupsSymbol(prefix string, kind model.CategoryKind) string {
	return prefix + "connector_" + kind.String() + "_groups"
}

func comment(s string) string { return "/*" + s + "*/" }

// cQuote returns s as a C string literal. Bytes outside printable ASCII use
// octal escapes, which never swallow the following character.
func cQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "\\%03o", c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// writeRecordTypes emits rci_info_t, the element and group records and the
// remote interface records. Name fields exist only when the names are emitted.
func writeRecordTypes(b *strings.Builder, p *Plan) {
	b.WriteString(rciInfoTypedef)

	elementName := ""
	if p.Options.Naming.ElementNames() {
		elementName = fmt.Sprintf("    char name[%d];\n", max(p.ElementNameSize, 1))
	}
	fmt.Fprintf(b, `
typedef struct {
%s    connector_element_access_t access;
    connector_element_value_type_t type;
    rci_function_t set_cb;
    rci_function_t get_cb;
} connector_group_element_t;
`, elementName)

	groupName := ""
	if p.Options.Naming.GroupNames() {
		groupName = fmt.Sprintf("  char name[%d];\n", max(p.GroupNameSize, 1))
	}
	fmt.Fprintf(b, `
typedef struct {
%s  size_t instances;
  struct {
      size_t count;
      connector_group_element_t CONST * CONST data;
  } elements;

  struct {
      size_t count;
      char CONST * CONST * description;
  } errors;

  rci_function_t start_cb;
  rci_function_t end_cb;
} connector_group_t;
`, groupName)

	b.WriteString(remoteTypedefs)
}

// writeIDEnums emits, per category, the enum value enumerations, element id
// enumeration and error enumeration of each group, then the group id
// enumeration of the category.
func writeIDEnums(b *strings.Builder, p *Plan) {
	prefix := p.Options.Prefix
	for _, kind := range model.AllCategories() {
		groups := p.Model.Groups(kind)
		if len(groups) == 0 {
			continue
		}
		for _, g := range groups {
			stem := idStem(kind, g.Name)
			for _, e := range g.Elements {
				if e.Type == model.TypeEnum {
					writeEnumValues(b, prefix, stem+"_"+e.Name, e.Values)
				}
			}

			b.WriteString("\ntypedef enum {\n")
			for _, e := range g.Elements {
				fmt.Fprintf(b, " %s_%s,\n", stem, e.Name)
			}
			fmt.Fprintf(b, " %s_COUNT\n} %s%s_id_t;\n", stem, prefix, stem)

			gn, ok := p.Numbering.Group(kind, g.Name)
			if !ok {
				panic(fmt.Sprintf("rcigen: no numbering for %s group %q", kind, g.Name))
			}
			writeGroupErrorEnum(b, prefix, &p.Numbering, gn, p.Split())
		}

		stem := categoryStem(kind)
		b.WriteString("\ntypedef enum {\n")
		for _, g := range groups {
			fmt.Fprintf(b, " %s_%s,\n", stem, g.Name)
		}
		fmt.Fprintf(b, " %s_COUNT\n} %s%s_id_t;\n", stem, prefix, stem)
	}
}

// writeEnumValues emits the value enumeration of an enum element. Empty
// names reserve their slot; the next named value carries its index.
func writeEnumValues(b *strings.Builder, prefix, stem string, values []model.EnumValue) {
	b.WriteString("\ntypedef enum {\n")
	skipped := false
	for i, v := range values {
		if v.Name == "" {
			skipped = true
			continue
		}
		fmt.Fprintf(b, " %s_%s", stem, model.SanitizeIdentifier(v.Name))
		if skipped {
			fmt.Fprintf(b, " = %d", i)
			skipped = false
		}
		b.WriteString(",\n")
	}
	fmt.Fprintf(b, " %s_COUNT\n} %s%s_id_t;\n", stem, prefix, stem)
}

// storage returns the storage class of data tables. The tables of the split
// data artifact are visible to the runtime; the combined header keeps them
// file local.
func storage(p *Plan) string {
	if p.Split() {
		return ""
	}
	return "static "
}

func writeRCIErrorArray(b *strings.Builder, p *Plan) {
	if p.Pool == nil {
		return
	}
	type row struct{ symbol, key string }
	var rows []row
	for _, e := range p.Model.RCIErrors {
		rows = append(rows, row{RCIErrorSymbol(e.Key), e.Key})
	}
	for _, e := range p.Model.GlobalErrors {
		rows = append(rows, row{GlobalErrorSymbol(e.Key), e.Key})
	}

	fmt.Fprintf(b, "\n%schar CONST * CONST %s[] = {\n", storage(p), rciErrorsSymbol)
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(b, " %s%s %s\n", r.symbol, sep, comment(r.key))
	}
	b.WriteString("};\n")
}

func writeElementArray(b *strings.Builder, p *Plan, kind model.CategoryKind, g model.Group) {
	if len(g.Elements) == 0 {
		return
	}
	prefix := p.Options.Prefix
	fmt.Fprintf(b, "\nstatic connector_group_element_t CONST %s[] = {", elementsSymbol(prefix, kind, g.Name))
	for i, e := range g.Elements {
		if p.Options.Naming.ElementNames() {
			fmt.Fprintf(b, "\n { %s,\n", cQuote(e.Name))
		} else {
			fmt.Fprintf(b, "\n {  %s\n", comment(e.Name))
		}
		fmt.Fprintf(b, "   connector_element_access_%s,\n", e.Access)
		fmt.Fprintf(b, "   %s,\n", TypeSymbol(e.Type))
		if e.ReadOnly() {
			b.WriteString("   NULL,\n")
		} else {
			fmt.Fprintf(b, "   %s%s,\n", functionCast, SetCallback(prefix, kind, g.Name, e.Name))
		}
		if e.Type == model.TypePassword {
			b.WriteString("   NULL\n")
		} else {
			fmt.Fprintf(b, "   %s%s\n", functionCast, GetCallback(prefix, kind, g.Name, e.Name))
		}
		b.WriteString(" }")
		if i < len(g.Elements)-1 {
			b.WriteString(",")
		}
	}
	b.WriteString("\n};\n")
}

// hasErrorArray reports whether the group gets an error description array.
func hasErrorArray(p *Plan, g model.Group) bool {
	return p.Pool != nil && len(g.Errors) > 0
}

func writeErrorArray(b *strings.Builder, p *Plan, kind model.CategoryKind, g model.Group) {
	if !hasErrorArray(p, g) {
		return
	}
	fmt.Fprintf(b, "\nstatic char CONST * CONST %s[] = {\n", errorsSymbol(p.Options.Prefix, kind, g.Name))
	for i, e := range g.Errors {
		sep := ","
		if i == len(g.Errors)-1 {
			sep = ""
		}
		fmt.Fprintf(b, " %s%s %s\n", GroupErrorSymbol(kind, g.Name, e.Key), sep, comment(e.Key))
	}
	b.WriteString("};\n")
}

func writeGroupArray(b *strings.Builder, p *Plan, kind model.CategoryKind, groups []model.Group) {
	prefix := p.Options.Prefix
	fmt.Fprintf(b, "\nstatic connector_group_t CONST %s[] = {", groupsSymbol(prefix, kind))
	for i, g := range groups {
		if p.Options.Naming.GroupNames() {
			fmt.Fprintf(b, "\n { %s,\n", cQuote(g.Name))
		} else {
			fmt.Fprintf(b, "\n {  %s\n", comment(g.Name))
		}
		fmt.Fprintf(b, "   %d, %s\n", g.Instances, comment(" instances "))

		if len(g.Elements) > 0 {
			sym := elementsSymbol(prefix, kind, g.Name)
			fmt.Fprintf(b, "   { asizeof(%s),\n     %s\n   },\n", sym, sym)
		} else {
			b.WriteString("   { 0,\n     NULL\n   },\n")
		}

		if hasErrorArray(p, g) {
			sym := errorsSymbol(prefix, kind, g.Name)
			fmt.Fprintf(b, "   { asizeof(%s),\n     %s\n   }, %s\n", sym, sym, comment(" errors "))
		} else {
			fmt.Fprintf(b, "   { 0,\n     NULL\n   }, %s\n", comment(" errors "))
		}

		fmt.Fprintf(b, "   %s%s,\n", functionCast, callbackSymbol(prefix, kind, g.Name, "start"))
		fmt.Fprintf(b, "   %s%s\n }", functionCast, callbackSymbol(prefix, kind, g.Name, "end"))
		if i < len(groups)-1 {
			b.WriteString(",")
		}
	}
	b.WriteString("\n};\n")
}

// writeDescriptorTables emits the element, error and group arrays of every
// category followed by the category table.
func writeDescriptorTables(b *strings.Builder, p *Plan) {
	prefix := p.Options.Prefix
	for _, kind := range model.AllCategories() {
		groups := p.Model.Groups(kind)
		if len(groups) == 0 {
			continue
		}
		for _, g := range groups {
			writeElementArray(b, p, kind, g)
			writeErrorArray(b, p, kind, g)
		}
		writeGroupArray(b, p, kind, groups)
	}

	fmt.Fprintf(b, "\n%sconnector_remote_group_table_t CONST %s[] = {\n", storage(p), groupTableSymbol)
	for i, kind := range model.AllCategories() {
		if i > 0 {
			b.WriteString(",\n")
		}
		if len(p.Model.Groups(kind)) == 0 {
			b.WriteString(" { NULL,\n   0\n }")
			continue
		}
		sym := groupsSymbol(prefix, kind)
		fmt.Fprintf(b, " { %s,\n   asizeof(%s)\n }", sym, sym)
	}
	b.WriteString("\n};\n")
}

// writeDescData emits rci_desc_data. The global error count is read through
// the enumerator so the initializer stays a constant expression.
func writeDescData(b *strings.Builder, p *Plan) {
	o := p.Options
	errorTable := "NULL"
	if p.Pool != nil {
		errorTable = rciErrorsSymbol
	}
	count := GlobalCountSymbol
	if p.Split() {
		count = GlobalCountIndexSymbol
	}
	fmt.Fprintf(b, "\nconnector_remote_config_data_t %s = {\n", descDataSymbol)
	fmt.Fprintf(b, "    %s,\n", groupTableSymbol)
	fmt.Fprintf(b, "    %s,\n", errorTable)
	fmt.Fprintf(b, "    %s,\n", count)
	fmt.Fprintf(b, "    0x%X,\n", o.FirmwareVersion)
	fmt.Fprintf(b, "    0x%X,\n", o.VendorID)
	fmt.Fprintf(b, "    %s,\n", cQuote(o.DeviceType))
	fmt.Fprintf(b, "    %s%srci_session_start_cb,\n", functionCast, o.Prefix)
	fmt.Fprintf(b, "    %s%srci_session_end_cb\n", functionCast, o.Prefix)
	b.WriteString("};\n")
}
