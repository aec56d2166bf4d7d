package lang

// Pool is a deduplicating owner of string bytes. Intern returns a stable
// pointer that remains valid for the pool's lifetime, and byte-equal
// inputs intern to the same pointer, so the expander's working outputs can
// hold references instead of copies.
//
// A Pool is not safe for concurrent use; each Run owns its own.
type Pool struct {
	refs map[string]*string
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{refs: make(map[string]*string)}
}

// Intern returns the pool's canonical reference for s, inserting it on
// first use.
func (p *Pool) Intern(s string) *string {
	if ref, ok := p.refs[s]; ok {
		return ref
	}

	owned := s
	p.refs[s] = &owned

	return &owned
}

// Len returns the number of distinct strings owned by the pool.
func (p *Pool) Len() int { return len(p.refs) }
