package lang

import "testing"

func TestPoolInternStable(t *testing.T) {
	p := NewPool()

	a := p.Intern("alpha")
	b := p.Intern("alpha")

	if a != b {
		t.Fatal("byte-equal inputs interned to different references")
	}

	if *a != "alpha" {
		t.Fatalf("interned value = %q", *a)
	}

	if c := p.Intern("beta"); c == a {
		t.Fatal("distinct inputs interned to the same reference")
	}

	if p.Len() != 2 {
		t.Fatalf("pool length = %d, want 2", p.Len())
	}
}

func TestPoolSharedAcrossRegions(t *testing.T) {
	// The same literal text produced by two regions occupies one pool
	// entry, so the result set grows without duplicating bytes.
	p := NewPool()

	refs := make(map[*string]struct{})
	for _, s := range []string{"x", "y", "x", "y", "x"} {
		refs[p.Intern(s)] = struct{}{}
	}

	if len(refs) != 2 || p.Len() != 2 {
		t.Fatalf("distinct refs = %d, pool = %d, want 2 and 2",
			len(refs), p.Len())
	}
}
