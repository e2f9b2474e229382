package rcigen

import (
	"fmt"
	"strings"

	"github.com/rci-tools/rcigen/pkg/model"
)

// PoolSymbol is the C array holding every error description.
const PoolSymbol = "connector_remote_all_strings"

// PoolEntry is one error description in the string pool.
type PoolEntry struct {
	// Symbol is the #define that evaluates to the entry's offset.
	Symbol string

	// Key is the error key the entry describes.
	Key string

	// Description is nil for an absent description.
	Description *string
}

// Size returns the number of pool bytes the entry occupies: one length byte
// followed by the characters.
func (e PoolEntry) Size() int {
	if e.Description == nil {
		return 1
	}
	return len(*e.Description) + 1
}

// Pool is an encoded string pool.
type Pool struct {
	Entries []PoolEntry

	// Offsets[i] is the byte offset of Entries[i]'s length marker.
	Offsets []int

	// Size is the total pool size in bytes.
	Size int
}

// EncodePool lays the entries out back to back in the given order.
func EncodePool(entries []PoolEntry) *Pool {
	p := &Pool{
		Entries: entries,
		Offsets: make([]int, len(entries)),
	}
	offset := 0
	for i, e := range entries {
		p.Offsets[i] = offset
		offset += e.Size()
	}
	p.Size = offset
	p.check()
	return p
}

// check panics when the offsets do not describe the pool byte for byte.
func (p *Pool) check() {
	if len(p.Entries) == 0 {
		if p.Size != 0 {
			panic(fmt.Sprintf("rcigen: empty string pool has size %d", p.Size))
		}
		return
	}
	last := len(p.Entries) - 1
	if p.Offsets[last]+p.Entries[last].Size() != p.Size {
		panic(fmt.Sprintf("rcigen: string pool offsets out of sync: last offset %d + %d != size %d",
			p.Offsets[last], p.Entries[last].Size(), p.Size))
	}
}

// Offset returns the offset bound to symbol.
func (p *Pool) Offset(symbol string) (int, bool) {
	for i, e := range p.Entries {
		if e.Symbol == symbol {
			return p.Offsets[i], true
		}
	}
	return 0, false
}

// Bytes returns the pool contents as the runtime sees them.
func (p *Pool) Bytes() []byte {
	out := make([]byte, 0, p.Size)
	for _, e := range p.Entries {
		if e.Description == nil {
			out = append(out, 0)
			continue
		}
		out = append(out, byte(len(*e.Description)))
		out = append(out, *e.Description...)
	}
	return out
}

// Literal renders the initializer rows of the pool array, one entry per line.
func (p *Pool) Literal() string {
	var b strings.Builder
	for i, e := range p.Entries {
		if i > 0 {
			b.WriteString(",\n")
		}
		if e.Description == nil || *e.Description == "" {
			b.WriteString(" 0")
			continue
		}
		s := *e.Description
		fmt.Fprintf(&b, " %d,", len(s))
		for j := 0; j < len(s); j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(charLiteral(s[j]))
		}
	}
	return b.String()
}

func charLiteral(c byte) string {
	switch c {
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	case '\n':
		return `'\n'`
	case '\t':
		return `'\t'`
	case '\r':
		return `'\r'`
	}
	if c >= 0x20 && c < 0x7f {
		return "'" + string(c) + "'"
	}
	return fmt.Sprintf(`'\x%02x'`, c)
}

// RCIErrorSymbol names the offset define of a protocol error.
func RCIErrorSymbol(key string) string {
	return "CONNECTOR_RCI_ERROR_" + strings.ToUpper(key)
}

// GlobalErrorSymbol names the offset define of a user global error.
func GlobalErrorSymbol(key string) string {
	return "CONNECTOR_GLOBAL_ERROR_" + strings.ToUpper(key)
}

// GroupErrorSymbol names the offset define of a group error.
func GroupErrorSymbol(kind model.CategoryKind, group, key string) string {
	return strings.ToUpper(kind.String() + "_" + group + "_ERROR_" + key)
}

// CollectPoolEntries lists every error description of m in pool order:
// protocol errors, then each category's group errors in declaration order,
// then user global errors.
func CollectPoolEntries(m *model.ConfigModel) []PoolEntry {
	var entries []PoolEntry
	for _, e := range m.RCIErrors {
		entries = append(entries, PoolEntry{Symbol: RCIErrorSymbol(e.Key), Key: e.Key, Description: e.Description})
	}
	for _, kind := range model.AllCategories() {
		for _, g := range m.Groups(kind) {
			for _, e := range g.Errors {
				entries = append(entries, PoolEntry{
					Symbol:      GroupErrorSymbol(kind, g.Name, e.Key),
					Key:         e.Key,
					Description: e.Description,
				})
			}
		}
	}
	for _, e := range m.GlobalErrors {
		entries = append(entries, PoolEntry{Symbol: GlobalErrorSymbol(e.Key), Key: e.Key, Description: e.Description})
	}
	return entries
}

func writePoolDefines(b *strings.Builder, p *Pool) {
	b.WriteString("\n")
	for i, e := range p.Entries {
		fmt.Fprintf(b, "#define %s (%s+%d)\n", e.Symbol, PoolSymbol, p.Offsets[i])
	}
}

func writePool(b *strings.Builder, p *Pool) {
	fmt.Fprintf(b, "\nchar CONST %s[] = {\n", PoolSymbol)
	b.WriteString(p.Literal())
	b.WriteString("\n};\n")
}
