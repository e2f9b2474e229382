package rcigen

import (
	"fmt"
	"strings"

	"github.com/rci-tools/rcigen/pkg/model"
)

// Error code enumerator names shared by every artifact.
const (
	rciErrorEnum    = "connector_rci_error"
	globalErrorEnum = "connector_global_error"

	// GlobalCountSymbol is the user global count sentinel. In split mode it
	// is a published constant rather than an enumerator.
	GlobalCountSymbol = globalErrorEnum + "_COUNT"

	// GlobalCountIndexSymbol is the enumerator behind GlobalCountSymbol in
	// split mode.
	GlobalCountIndexSymbol = globalErrorEnum + "_COUNT_INDEX"
)

// Code is an allocated error code.
type Code struct {
	Key   string
	Value int
}

// GroupNumbering holds the local error codes of one group.
type GroupNumbering struct {
	Category model.CategoryKind
	Group    string
	Codes    []Code

	// Count is one past the last local code.
	Count int
}

// Numbering is the complete error code space of a model.
type Numbering struct {
	RCI      []Code
	RCICount int

	Global      []Code
	GlobalCount int

	// Groups has one entry per group, in category and declaration order,
	// including groups without errors.
	Groups []GroupNumbering
}

// AllocateErrorCodes numbers the three error tiers. Protocol errors start at
// 1, user global errors continue from the protocol count sentinel and each
// group's local errors continue from the global count sentinel.
func AllocateErrorCodes(m *model.ConfigModel) Numbering {
	var n Numbering
	n.RCI, n.RCICount = allocate(1, m.RCIErrors)
	n.Global, n.GlobalCount = allocate(n.RCICount, m.GlobalErrors)

	for _, kind := range model.AllCategories() {
		for _, g := range m.Groups(kind) {
			codes, count := allocate(n.GlobalCount, g.Errors)
			n.Groups = append(n.Groups, GroupNumbering{
				Category: kind,
				Group:    g.Name,
				Codes:    codes,
				Count:    count,
			})
		}
	}
	return n
}

// allocate assigns consecutive codes from start and returns the sentinel.
func allocate(start int, errs model.ErrorMap) ([]Code, int) {
	next := start
	codes := make([]Code, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, Code{Key: e.Key, Value: next})
		next++
	}
	return codes, next
}

// Group returns the numbering of one group.
func (n *Numbering) Group(kind model.CategoryKind, name string) (GroupNumbering, bool) {
	for _, g := range n.Groups {
		if g.Category == kind && g.Group == name {
			return g, true
		}
	}
	return GroupNumbering{}, false
}

// Sequence returns the codes visible to a group's error enumeration:
// protocol codes, then global codes, then the group's local codes.
func (n *Numbering) Sequence(g GroupNumbering) []int {
	out := make([]int, 0, len(n.RCI)+len(n.Global)+len(g.Codes))
	for _, tier := range [][]Code{n.RCI, n.Global, g.Codes} {
		for _, c := range tier {
			out = append(out, c.Value)
		}
	}
	return out
}

// check panics when a tier does not continue from the previous sentinel.
func (n *Numbering) check() {
	expect := func(tier string, codes []Code, start, count int) {
		for i, c := range codes {
			if c.Value != start+i {
				panic(fmt.Sprintf("rcigen: %s error %q has code %d, want %d", tier, c.Key, c.Value, start+i))
			}
		}
		if count != start+len(codes) {
			panic(fmt.Sprintf("rcigen: %s error count %d, want %d", tier, count, start+len(codes)))
		}
	}
	expect("rci", n.RCI, 1, n.RCICount)
	expect("global", n.Global, n.RCICount, n.GlobalCount)
	for _, g := range n.Groups {
		expect(g.Category.String()+" "+g.Group, g.Codes, n.GlobalCount, g.Count)
	}
}

func writeRCIErrorEnum(b *strings.Builder, prefix string, n *Numbering) {
	fmt.Fprintf(b, "\ntypedef enum {\n %s_OFFSET = 1,\n", rciErrorEnum)
	for i, c := range n.RCI {
		if i == 0 {
			fmt.Fprintf(b, " %s_%s = %s_OFFSET,\n", rciErrorEnum, c.Key, rciErrorEnum)
			continue
		}
		fmt.Fprintf(b, " %s_%s,\n", rciErrorEnum, c.Key)
	}
	fmt.Fprintf(b, " %s_COUNT\n} %s%s_id_t;\n", rciErrorEnum, prefix, rciErrorEnum)
}

// writeGlobalErrorEnum ends the enumeration with the count sentinel, or with
// the index behind the published count constant in split mode.
func writeGlobalErrorEnum(b *strings.Builder, prefix string, n *Numbering, split bool) {
	fmt.Fprintf(b, "\ntypedef enum {\n %s_OFFSET = %s_COUNT,\n", globalErrorEnum, rciErrorEnum)
	for i, c := range n.Global {
		if i == 0 {
			fmt.Fprintf(b, " %s_%s = %s_OFFSET,\n", globalErrorEnum, c.Key, globalErrorEnum)
			continue
		}
		fmt.Fprintf(b, " %s_%s,\n", globalErrorEnum, c.Key)
	}
	sentinel := GlobalCountSymbol
	if split {
		sentinel = GlobalCountIndexSymbol
	}
	if len(n.Global) == 0 {
		fmt.Fprintf(b, " %s = %s_OFFSET\n", sentinel, globalErrorEnum)
	} else {
		fmt.Fprintf(b, " %s\n", sentinel)
	}
	fmt.Fprintf(b, "} %s%s_id_t;\n", prefix, globalErrorEnum)
}

// writeGroupErrorEnum mirrors the protocol and global names at group scope
// and numbers the local errors from the global count sentinel.
func writeGroupErrorEnum(b *strings.Builder, prefix string, n *Numbering, g GroupNumbering, split bool) {
	if len(g.Codes) == 0 {
		return
	}
	base := groupErrorBase(g.Category, g.Group)

	b.WriteString("\ntypedef enum {\n")
	for i, c := range n.RCI {
		if i == 0 {
			fmt.Fprintf(b, " %s_%s = 1, /* Protocol defined */\n", base, c.Key)
			continue
		}
		fmt.Fprintf(b, " %s_%s,\n", base, c.Key)
	}
	for i, c := range n.Global {
		if i == 0 {
			fmt.Fprintf(b, " %s_%s, /* User defined (global errors) */\n", base, c.Key)
			continue
		}
		fmt.Fprintf(b, " %s_%s,\n", base, c.Key)
	}
	start := GlobalCountSymbol
	if split {
		start = GlobalCountIndexSymbol
	}
	for i, c := range g.Codes {
		if i == 0 {
			fmt.Fprintf(b, " %s_%s = %s, /* User defined (group errors) */\n", base, c.Key, start)
			continue
		}
		fmt.Fprintf(b, " %s_%s,\n", base, c.Key)
	}
	fmt.Fprintf(b, " %s_COUNT\n} %s%s_id_t;\n", base, prefix, base)
}
