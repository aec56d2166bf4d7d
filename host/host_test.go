package host

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/tsub/lang"
)

func TestMapBindings(t *testing.T) {
	m := New().
		Bind("count", lang.Number(3)).
		Bind("name", lang.String("web"))

	v, ok := m.GetVariable("count")
	if !ok || v.Number() != 3 {
		t.Fatalf("GetVariable(count) = (%s, %v)", v, ok)
	}

	if _, ok := m.GetVariable("missing"); ok {
		t.Fatal("GetVariable(missing) reported a binding")
	}

	// Rebinding replaces.
	m.Bind("count", lang.Number(4))

	if v, _ := m.GetVariable("count"); v.Number() != 4 {
		t.Fatalf("rebinding did not replace: %s", v)
	}
}

func TestMapExecFunction(t *testing.T) {
	errBoom := errors.New("boom")

	m := New().
		BindFunc("double", func(args []lang.Value) (lang.Value, error) {
			return lang.Number(args[0].Number() * 2), nil
		}).
		BindFunc("fail", func([]lang.Value) (lang.Value, error) {
			return lang.Null(), errBoom
		})

	v, err := m.ExecFunction("double", []lang.Value{lang.Number(21)})
	if err != nil {
		t.Fatalf("ExecFunction(double) error: %v", err)
	}

	if v.Number() != 42 {
		t.Fatalf("double(21) = %s", v)
	}

	if _, err := m.ExecFunction("fail", []lang.Value{lang.Number(1)}); !errors.Is(err, errBoom) {
		t.Fatalf("ExecFunction(fail) error = %v, want wrapped cause", err)
	}
}

func TestMapSuggestsOnUnknownFunction(t *testing.T) {
	m := New().
		BindFunc("upper", func(args []lang.Value) (lang.Value, error) {
			return args[0], nil
		})

	_, err := m.ExecFunction("uper", []lang.Value{lang.String("x")})
	if err == nil {
		t.Fatal("expected error for unknown function")
	}

	if !strings.Contains(err.Error(), "upper") {
		t.Fatalf("error %q does not suggest the close match", err)
	}
}

func TestMapAsRunHost(t *testing.T) {
	m := New().
		Bind("hosts", lang.List(lang.String("a"), lang.String("b"))).
		BindFunc("inc", func(args []lang.Value) (lang.Value, error) {
			return lang.Number(args[0].Number() + 1), nil
		})

	got, err := lang.Run(m, "`hosts`-`inc(1)`")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := []string{"a-2", "b-2"}
	if len(got) != len(want) {
		t.Fatalf("Run = %q, want %q", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Run[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNames(t *testing.T) {
	m := New().
		Bind("b", lang.Number(1)).
		Bind("a", lang.Number(2)).
		BindFunc("c", func(args []lang.Value) (lang.Value, error) {
			return args[0], nil
		})

	names := m.Names()

	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("Names = %v, want %v", names, want)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names = %v, want %v", names, want)
		}
	}
}
