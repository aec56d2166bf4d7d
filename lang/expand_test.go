package lang

import (
	"errors"
	"fmt"
	"testing"
)

// testHost backs expansion tests with fixed variables and a call-counting
// function table.
type testHost struct {
	vars  map[string]Value
	funcs map[string]func(args []Value) (Value, error)
	calls map[string]int
}

func (h *testHost) GetVariable(name string) (Value, bool) {
	v, ok := h.vars[name]

	return v, ok
}

func (h *testHost) ExecFunction(name string, args []Value) (Value, error) {
	if h.calls == nil {
		h.calls = make(map[string]int)
	}

	h.calls[name]++

	fn, ok := h.funcs[name]
	if !ok {
		return Value{}, fmt.Errorf("unknown function %q", name)
	}

	return fn(args)
}

func TestRunScenarios(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		want  []string
	}{
		{"literal", "abc", []string{"abc"}},
		{"half open range", "`[1..3]`", []string{"1", "2"}},
		{"map over range", "`[1..4]{$*10}`", []string{"10", "20", "30"}},
		{
			"escaped backtick with mixed list",
			"c\\``[1==1 ? 2:3 ..5 , 1{$*100}]`.http",
			[]string{"c`2.http", "c`3.http", "c`4.http", "c`100.http"},
		},
		{
			"product of two expressions",
			"`[1,2]``[10,20]`",
			[]string{"110", "120", "210", "220"},
		},
		{"not on string", "`!\"hello\"`", []string{"0"}},
		{"escaped backslash", "a\\\\b", []string{"a\\b"}},
		{"lone backslash kept verbatim", "a\\xb", []string{"a\\xb"}},
		{"trailing backslash kept verbatim", "ab\\", []string{"ab\\"}},
		{
			"nested list flattens",
			"`[1,\"a\",[2,3]]`",
			[]string{"1", "a", "2", "3"},
		},
		{
			"segments surround expression",
			"app-`[1..3]`.log",
			[]string{"app-1.log", "app-2.log"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(nil, tt.input)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.input, err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("Run(%q) = %q, want %q", tt.input, got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Run(%q)[%d] = %q, want %q",
						tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRunEmptyTemplate(t *testing.T) {
	got, err := Run(nil, "")
	if err != nil {
		t.Fatalf("Run(\"\") error: %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("Run(\"\") = %q, want no outputs", got)
	}
}

func TestRunDeterministic(t *testing.T) {
	const input = "`[1,2]`-`[\"a\",\"b\"]`"

	first, err := Run(nil, input)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	for range 10 {
		again, err := Run(nil, input)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}

		if len(again) != len(first) {
			t.Fatalf("output count changed: %d != %d", len(again), len(first))
		}

		for i := range again {
			if again[i] != first[i] {
				t.Fatalf("output %d changed: %q != %q", i, again[i], first[i])
			}
		}
	}
}

func TestRunProductCardinality(t *testing.T) {
	// Three regions of sizes 2, 3, and 2.
	got, err := Run(nil, "`[1,2]`x`[1..4]`y`[\"a\",\"b\"]`")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if want := 2 * 3 * 2; len(got) != want {
		t.Fatalf("got %d outputs, want %d", len(got), want)
	}
}

func TestRunHostVariable(t *testing.T) {
	h := &testHost{vars: map[string]Value{"abcd": Number(5)}}

	got, err := Run(h, "`abcd`")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(got) != 1 || got[0] != "5" {
		t.Fatalf("Run = %q, want [\"5\"]", got)
	}
}

func TestRunHostFunction(t *testing.T) {
	h := &testHost{
		funcs: map[string]func(args []Value) (Value, error){
			"func": func(args []Value) (Value, error) {
				return Number(args[0].Number() + 1), nil
			},
		},
	}

	got, err := Run(h, "`func(7)`")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(got) != 1 || got[0] != "8" {
		t.Fatalf("Run = %q, want [\"8\"]", got)
	}
}

func TestRunUnterminatedExpression(t *testing.T) {
	for _, input := range []string{"`1", "`1 = 2`", "`(1+2) extra`"} {
		_, err := Run(nil, input)
		if !errors.Is(err, ErrUnterminatedExpr) {
			t.Errorf("Run(%q) error = %v, want ErrUnterminatedExpr",
				input, err)
		}
	}
}

func TestRunNullFromHost(t *testing.T) {
	h := &testHost{vars: map[string]Value{"nothing": Null()}}

	_, err := Run(h, "`nothing`")
	if !errors.Is(err, ErrNullExpansion) {
		t.Fatalf("error = %v, want ErrNullExpansion", err)
	}
}

func TestRunOutputLimit(t *testing.T) {
	_, err := Run(nil, "`[1..100]``[1..100]`", WithMaxOutputs(100))
	if !errors.Is(err, ErrTooManyOutputs) {
		t.Fatalf("error = %v, want ErrTooManyOutputs", err)
	}

	// The cap can be disabled.
	got, err := Run(nil, "`[1..100]``[1..100]`", WithMaxOutputs(0))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if want := 99 * 99; len(got) != want {
		t.Fatalf("got %d outputs, want %d", len(got), want)
	}
}

func TestExpanderDiagnosticEnvelope(t *testing.T) {
	_, err := Run(nil, "`1")
	if err == nil {
		t.Fatal("expected error")
	}

	const prefix = "[Module:TextProcessor]:"
	if msg := err.Error(); len(msg) < len(prefix) || msg[:len(prefix)] != prefix {
		t.Fatalf("diagnostic %q does not carry the expander envelope", msg)
	}
}
