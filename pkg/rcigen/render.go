package rcigen

import (
	"fmt"
	"strings"

	"github.com/rci-tools/rcigen/pkg/version"
)

const internalDataGuard = "CONNECTOR_RCI_PARSER_INTERNAL_DATA"

const constProtection = `
#if (defined CONNECTOR_CONST_PROTECTION)
#define CONST
#undef CONNECTOR_CONST_PROTECTION
#else
#if (defined CONST)
#define CONNECTOR_CONST_STORAGE CONST
#undef CONST
#endif
#define CONST const
#endif
`

const constRestore = `
#undef CONST
#if (defined CONNECTOR_CONST_STORAGE)
#define CONST CONNECTOR_CONST_STORAGE
#undef CONNECTOR_CONST_STORAGE
#endif
`

// writeBanner writes the generated-file notice. It carries no timestamp so
// regenerating from the same input is byte identical.
func writeBanner(b *strings.Builder, p *Plan, kind string) {
	b.WriteString("/*\n * This is an auto-generated file - DO NOT EDIT!\n")
	fmt.Fprintf(b, " * This is a %s file generated by rcigen %s.\n", kind, version.Tool)
	if p.Arguments != "" {
		fmt.Fprintf(b, " * The command line arguments were: %s\n", strings.ReplaceAll(p.Arguments, "*/", "* /"))
	}
	b.WriteString(" */\n")
}

func includeGuard(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, ".", "_"))
}

// writeDeclarations writes the sections shared by the combined header and
// the definitions artifact: feature defines, type enumerations, value
// records, descriptor records, error enumerations, id enumerations and
// callback prototypes.
func writeDeclarations(b *strings.Builder, p *Plan) {
	writeFeatureDefines(b, p)
	writeOnOffEnum(b, p.Active)
	writeTypeEnum(b, p.Active)
	writeValueRecords(b, p.Layout)
	writeRecordTypes(b, p)
	writeRCIErrorEnum(b, p.Options.Prefix, &p.Numbering)
	writeGlobalErrorEnum(b, p.Options.Prefix, &p.Numbering, p.Split())
	writeIDEnums(b, p)
	writePrototypes(b, p)
}

// writeData writes the string pool, the error arrays and the descriptor
// tables.
func writeData(b *strings.Builder, p *Plan) {
	if p.Pool != nil {
		writePoolDefines(b, p.Pool)
		writePool(b, p.Pool)
	}
	writeRCIErrorArray(b, p)
	writeDescriptorTables(b, p)
	writeDescData(b, p)
}

func renderCombined(p *Plan) string {
	var b strings.Builder
	guard := includeGuard(CombinedFileName)

	writeBanner(&b, p, "H")
	fmt.Fprintf(&b, "\n#ifndef %s\n#define %s\n", guard, guard)
	b.WriteString("\n#include \"connector_api.h\"\n")
	b.WriteString(constProtection)

	writeDeclarations(&b, p)

	fmt.Fprintf(&b, "\n#if defined %s\n", internalDataGuard)
	fmt.Fprintf(&b, "\n#define FIRMWARE_TARGET_ZERO_VERSION  0x%X\n", p.Options.FirmwareVersion)
	writeData(&b, p)
	fmt.Fprintf(&b, "\n#endif /* %s */\n", internalDataGuard)

	b.WriteString(constRestore)
	fmt.Fprintf(&b, "\n#endif /* %s */\n", guard)
	return b.String()
}

func renderDefinitions(p *Plan) string {
	var b strings.Builder
	guard := includeGuard(DefinitionsFileName)

	writeBanner(&b, p, "H")
	fmt.Fprintf(&b, "\n#ifndef %s\n#define %s\n", guard, guard)
	b.WriteString("\n#include \"connector_api.h\"\n")
	b.WriteString(constProtection)

	writeDeclarations(&b, p)

	b.WriteString("\nextern uint32_t CONST FIRMWARE_TARGET_ZERO_VERSION;\n")
	fmt.Fprintf(&b, "extern unsigned int CONST %s;\n", GlobalCountSymbol)
	if p.Pool != nil {
		fmt.Fprintf(&b, "extern char CONST * CONST %s[];\n", rciErrorsSymbol)
	}
	fmt.Fprintf(&b, "extern connector_remote_group_table_t CONST %s[];\n", groupTableSymbol)

	b.WriteString(constRestore)
	fmt.Fprintf(&b, "\n#endif /* %s */\n", guard)
	return b.String()
}

// renderData renders the data artifact. It publishes the global error count
// that the definitions artifact declares.
func renderData(p *Plan) string {
	var b strings.Builder

	writeBanner(&b, p, "C")
	fmt.Fprintf(&b, "\n#include \"%s\"\n", DefinitionsFileName)
	b.WriteString(constProtection)

	fmt.Fprintf(&b, "\nuint32_t CONST FIRMWARE_TARGET_ZERO_VERSION = 0x%X;\n", p.Options.FirmwareVersion)
	fmt.Fprintf(&b, "unsigned int CONST %s = %s;\n", GlobalCountSymbol, GlobalCountIndexSymbol)
	writeData(&b, p)

	b.WriteString(constRestore)
	return b.String()
}
