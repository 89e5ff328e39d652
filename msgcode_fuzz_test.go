package msgcode

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func FuzzLevelOf(f *testing.F) {
	for _, seed := range []string{"", "a", "a-E", "USR001-W", "ab--", "ab-é", " x-I ", "abc"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, code string) {
		level, ok := LevelOf(code)
		if !ok {
			if _, err := ParseMessage(code, ""); err == nil {
				t.Fatalf("ParseMessage(%q) accepted a code LevelOf rejected", code)
			}
			return
		}
		m, err := ParseMessage(code, "")
		if err != nil {
			t.Fatalf("ParseMessage(%q) error = %v", code, err)
		}
		if m.Level() != level {
			t.Fatalf("level mismatch for %q: %v vs %v", code, m.Level(), level)
		}
		if m.Code() == "" {
			t.Fatalf("empty bare code for %q", code)
		}
		if !strings.HasPrefix(strings.TrimSpace(code), m.Code()) {
			t.Fatalf("bare code %q is not a prefix of %q", m.Code(), code)
		}
	})
}

func FuzzExpand(f *testing.F) {
	f.Add("{0}-{1}", "a", "b")
	f.Add("{0}{1}", "{1}", "x")
	f.Add("plain", "", "")
	f.Fuzz(func(t *testing.T, template string, a string, b string) {
		if !utf8.ValidString(template) {
			return
		}
		m, err := ParseMessage("FUZZ-I", template)
		if err != nil {
			t.Fatal(err)
		}
		out := m.Expand(a, b)
		if !strings.Contains(template, "{0}") && !strings.Contains(template, "{1}") && out != template {
			t.Fatalf("Expand changed a template without placeholders: %q -> %q", template, out)
		}
	})
}
