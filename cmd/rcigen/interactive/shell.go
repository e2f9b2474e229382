// Package interactive provides the interactive inspector of rcigen.
//
// The inspector loads one generation result and lets the user browse the
// derived plan (active types, value layout, error numbering, string pool)
// and the rendered artifacts before anything is written.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rci-tools/rcigen/pkg/artifact"
	"github.com/rci-tools/rcigen/pkg/model"
	"github.com/rci-tools/rcigen/pkg/rcigen"
)

// Shell handles interactive mode for rcigen.
type Shell struct {
	res *rcigen.Result
	rl  *readline.Instance
}

// New creates a new inspector for res.
func New(res *rcigen.Result) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rcigen> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(res),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{res: res, rl: rl}, nil
}

// NewDetached creates an inspector without a terminal. Commands are run
// with Exec.
func NewDetached(res *rcigen.Result) *Shell {
	return &Shell{res: res}
}

func completer(res *rcigen.Result) *readline.PrefixCompleter {
	var artifacts []readline.PrefixCompleterInterface
	for _, a := range res.Artifacts {
		artifacts = append(artifacts, readline.PcItem(a.Name))
	}
	var groups []readline.PrefixCompleterInterface
	for _, kind := range model.AllCategories() {
		var names []readline.PrefixCompleterInterface
		for _, g := range res.Plan.Model.Groups(kind) {
			names = append(names, readline.PcItem(g.Name))
		}
		groups = append(groups, readline.PcItem(kind.String(), names...))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("summary"),
		readline.PcItem("types"),
		readline.PcItem("layout"),
		readline.PcItem("errors"),
		readline.PcItem("pool"),
		readline.PcItem("groups"),
		readline.PcItem("elements", groups...),
		readline.PcItem("show", artifacts...),
		readline.PcItem("digest"),
		readline.PcItem("quit"),
	)
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	out := s.rl.Stdout()
	s.printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			return
		}
		if s.Exec(out, line) {
			return
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(out io.Writer, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(out)
	case "summary", "s":
		s.cmdSummary(out)
	case "types", "t":
		s.cmdTypes(out)
	case "layout", "l":
		s.cmdLayout(out)
	case "errors", "e":
		s.cmdErrors(out)
	case "pool", "p":
		s.cmdPool(out)
	case "groups", "g":
		s.cmdGroups(out)
	case "elements", "el":
		s.cmdElements(out, args)
	case "show":
		s.cmdShow(out, args)
	case "digest", "d":
		s.cmdDigest(out)
	case "quit", "exit", "q":
		fmt.Fprintln(out, "Exiting...")
		return true
	default:
		fmt.Fprintf(out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp(out io.Writer) {
	fmt.Fprintln(out, `
rcigen Inspector Commands:
  Plan:
    summary                 - Show run summary
    types                   - List active element types
    layout                  - Show the value holder layout
    errors                  - Show error code numbering
    pool                    - Show string pool entries and offsets
    groups                  - List groups per category
    elements <cat> <group>  - List the elements of a group

  Artifacts:
    show <artifact> [n]     - Print an artifact (first n lines)
    digest                  - Show artifact digests

    help                    - Show this help
    quit                    - Exit`)
}

func (s *Shell) cmdSummary(out io.Writer) {
	p := s.res.Plan
	fmt.Fprintf(out, "Run:          %s\n", s.res.RunID)
	fmt.Fprintf(out, "Mode:         %s\n", p.Options.Mode)
	fmt.Fprintf(out, "Naming:       %s\n", p.Options.Naming)
	fmt.Fprintf(out, "Descriptions: %t\n", p.Options.ErrorDescriptions)
	fmt.Fprintf(out, "Firmware:     0x%X\n", p.Options.FirmwareVersion)
	if p.Options.Prefix != "" {
		fmt.Fprintf(out, "Prefix:       %s\n", p.Options.Prefix)
	}
	fmt.Fprintf(out, "Groups:       %d\n", p.GroupCount())
	fmt.Fprintf(out, "Types:        %d\n", p.Active.Len())
	for _, a := range s.res.Artifacts {
		fmt.Fprintf(out, "Artifact:     %s (%d bytes)\n", a.Name, len(a.Text))
	}
}

func (s *Shell) cmdTypes(out io.Writer) {
	types := s.res.Plan.Active.Types()
	if len(types) == 0 {
		fmt.Fprintln(out, "No element types in use")
		return
	}
	fmt.Fprintf(out, "%-5s %-18s %s\n", "CODE", "TYPE", "RECORD")
	for _, t := range types {
		fmt.Fprintf(out, "%-5d %-18s %s\n", t.Code(), t, rcigen.RecordFor(t))
	}
}

func (s *Shell) cmdLayout(out io.Writer) {
	l := s.res.Plan.Layout
	if len(l.Records) == 0 {
		fmt.Fprintln(out, "struct (no records)")
		fmt.Fprintf(out, "  %s\n", rcigen.RecordString.Field())
		return
	}
	kind := "struct"
	if l.Union {
		kind = "union"
	}
	fmt.Fprintf(out, "%s with %d record(s)\n", kind, len(l.Records))
	for _, r := range l.Records {
		fmt.Fprintf(out, "  %-10s %s\n", r, r.Field())
	}
}

func (s *Shell) cmdErrors(out io.Writer) {
	n := s.res.Plan.Numbering

	fmt.Fprintln(out, "Protocol errors:")
	printCodes(out, n.RCI)
	fmt.Fprintf(out, "  COUNT = %d\n", n.RCICount)

	fmt.Fprintln(out, "Global errors:")
	printCodes(out, n.Global)
	fmt.Fprintf(out, "  COUNT = %d\n", n.GlobalCount)

	for _, g := range n.Groups {
		if len(g.Codes) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s/%s errors:\n", g.Category, g.Group)
		printCodes(out, g.Codes)
		fmt.Fprintf(out, "  COUNT = %d\n", g.Count)
	}
}

func printCodes(out io.Writer, codes []rcigen.Code) {
	for _, c := range codes {
		fmt.Fprintf(out, "  %4d  %s\n", c.Value, c.Key)
	}
}

func (s *Shell) cmdPool(out io.Writer) {
	pool := s.res.Plan.Pool
	if pool == nil {
		fmt.Fprintln(out, "Error descriptions are disabled; no string pool")
		return
	}
	fmt.Fprintf(out, "%-6s %-4s %-44s %s\n", "OFFSET", "LEN", "SYMBOL", "DESCRIPTION")
	for i, e := range pool.Entries {
		desc := "(none)"
		if e.Description != nil {
			desc = strconv.Quote(*e.Description)
		}
		fmt.Fprintf(out, "%-6d %-4d %-44s %s\n", pool.Offsets[i], e.Size()-1, e.Symbol, desc)
	}
	fmt.Fprintf(out, "Total: %d bytes\n", pool.Size)
}

func (s *Shell) cmdGroups(out io.Writer) {
	m := s.res.Plan.Model
	for _, kind := range model.AllCategories() {
		groups := m.Groups(kind)
		fmt.Fprintf(out, "%s (%d groups)\n", kind, len(groups))
		for i, g := range groups {
			fmt.Fprintf(out, "  [%d] %-20s instances=%d elements=%d errors=%d\n",
				i, g.Name, g.Instances, len(g.Elements), g.Errors.Len())
		}
	}
}

func (s *Shell) cmdElements(out io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(out, "Usage: elements <setting|state> <group>")
		return
	}
	kind, ok := parseCategory(args[0])
	if !ok {
		fmt.Fprintf(out, "Unknown category: %s\n", args[0])
		return
	}
	for _, g := range s.res.Plan.Model.Groups(kind) {
		if g.Name != args[1] {
			continue
		}
		fmt.Fprintf(out, "%-4s %-20s %-18s %s\n", "ID", "NAME", "TYPE", "ACCESS")
		for i, e := range g.Elements {
			fmt.Fprintf(out, "%-4d %-20s %-18s %s\n", i, e.Name, e.Type, e.Access)
			for j, v := range e.Values {
				if v.Name == "" {
					continue
				}
				fmt.Fprintf(out, "       %d = %s\n", j, v.Name)
			}
		}
		return
	}
	fmt.Fprintf(out, "Unknown group: %s/%s\n", args[0], args[1])
}

func parseCategory(s string) (model.CategoryKind, bool) {
	for _, kind := range model.AllCategories() {
		if strings.EqualFold(kind.String(), s) {
			return kind, true
		}
	}
	return 0, false
}

func (s *Shell) cmdShow(out io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(out, "Usage: show <artifact> [lines]")
		return
	}
	a, ok := s.lookup(args[0])
	if !ok {
		fmt.Fprintf(out, "Unknown artifact: %s\n", args[0])
		return
	}
	text := a.Text
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			fmt.Fprintf(out, "Invalid line count: %s\n", args[1])
			return
		}
		lines := strings.SplitAfter(text, "\n")
		if n < len(lines) {
			text = strings.Join(lines[:n], "")
		}
	}
	fmt.Fprint(out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(out)
	}
}

func (s *Shell) lookup(name string) (rcigen.Rendered, bool) {
	for _, a := range s.res.Artifacts {
		if a.Name == name || a.Kind.String() == name {
			return a, true
		}
	}
	return rcigen.Rendered{}, false
}

func (s *Shell) cmdDigest(out io.Writer) {
	for _, a := range s.res.Artifacts {
		fmt.Fprintf(out, "%s  %s\n", artifact.Digest(a.Text), a.Name)
	}
}
