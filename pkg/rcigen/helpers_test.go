package rcigen

import (
	"strings"
	"testing"

	"github.com/rci-tools/rcigen/pkg/model"
)

func mustContain(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("output does not contain %q\nOutput (first 3000 chars):\n%s", substr, truncate(output, 3000))
	}
}

func mustNotContain(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Errorf("output should not contain %q", substr)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func generate(t *testing.T, m *model.ConfigModel, opts Options) *Result {
	t.Helper()
	res, err := Generate(m, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func combined(t *testing.T, m *model.ConfigModel, opts Options) string {
	t.Helper()
	opts.Mode = ModeCombined
	a, ok := generate(t, m, opts).Artifact(ArtifactCombined)
	if !ok {
		t.Fatal("no combined artifact")
	}
	return a.Text
}

func split(t *testing.T, m *model.ConfigModel, opts Options) (defs, data string) {
	t.Helper()
	opts.Mode = ModeSplit
	res := generate(t, m, opts)
	d, ok := res.Artifact(ArtifactDefinitions)
	if !ok {
		t.Fatal("no definitions artifact")
	}
	c, ok := res.Artifact(ArtifactData)
	if !ok {
		t.Fatal("no data artifact")
	}
	return d.Text, c.Text
}
