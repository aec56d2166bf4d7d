package host

import (
	"strings"
	"testing"

	"github.com/ardnew/tsub/lang"
)

func TestLoadYAML(t *testing.T) {
	const doc = `
count: 3
name: web
ports: [80, 443]
mixed:
  - 1
  - two
  - [3, 4]
negative: -7
`

	m, err := LoadYAML(nil, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadYAML error: %v", err)
	}

	if v, _ := m.GetVariable("count"); v.Number() != 3 {
		t.Errorf("count = %s", v)
	}

	if v, _ := m.GetVariable("name"); v.Text() != "web" {
		t.Errorf("name = %s", v)
	}

	if v, _ := m.GetVariable("negative"); v.Number() != -7 {
		t.Errorf("negative = %s", v)
	}

	v, ok := m.GetVariable("ports")
	if !ok || v.Kind() != lang.KindList || len(v.List()) != 2 {
		t.Fatalf("ports = %s", v)
	}

	// Nested sequences load as nested lists.
	v, _ = m.GetVariable("mixed")
	if elems := v.List(); elems[2].Kind() != lang.KindList {
		t.Fatalf("mixed = %s", v)
	}
}

func TestLoadYAMLIntoExisting(t *testing.T) {
	m := Builtins().Bind("count", lang.Number(1))

	if _, err := LoadYAML(m, strings.NewReader("count: 2")); err != nil {
		t.Fatalf("LoadYAML error: %v", err)
	}

	// Loaded bindings override, builtins remain callable.
	got, err := lang.Run(m, "`upper(\"v\")``count`")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(got) != 1 || got[0] != "V2" {
		t.Fatalf("Run = %q, want [\"V2\"]", got)
	}
}

func TestLoadYAMLThroughTemplate(t *testing.T) {
	m, err := LoadYAML(nil, strings.NewReader("replicas: [1, 2]"))
	if err != nil {
		t.Fatalf("LoadYAML error: %v", err)
	}

	got, err := lang.Run(m, "pod-`replicas`")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := []string{"pod-1", "pod-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Run = %q, want %q", got, want)
		}
	}
}

func TestLoadYAMLRejects(t *testing.T) {
	for _, tt := range []struct {
		name string
		doc  string
	}{
		{"float", "x: 1.5"},
		{"bool", "x: true"},
		{"null", "x: null"},
		{"nested mapping", "x:\n  y: 1"},
		{"empty list", "x: []"},
		{"overflow", "x: 4294967296"},
		{"underflow", "x: -4294967296"},
		{"bad element", "x: [1, 1.5]"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadYAML(nil, strings.NewReader(tt.doc)); err == nil {
				t.Fatalf("LoadYAML(%q) succeeded, want error", tt.doc)
			}
		})
	}
}
