package shortcuts

// Matcher resolves incoming keys against the registry's effective bindings,
// buffering partial sequences (like 'g' in a 'g j' chord) until they either
// complete or fail.
//
// A Matcher is not safe for concurrent use; the TUI feeds it from the single
// update loop.
type Matcher struct {
	reg     *Registry
	pending []string
}

// NewMatcher creates a matcher over reg.
func NewMatcher(reg *Registry) *Matcher {
	return &Matcher{reg: reg}
}

// Feed appends key to the pending sequence and attempts to resolve it.
//
// When the sequence exactly matches an enabled shortcut's effective keys,
// the definition is returned with matched=true and the buffer resets. When
// the sequence is a strict prefix of at least one enabled binding, pending
// is true and the buffer is retained. Otherwise the buffer resets; a failed
// multi-key sequence retries the final key as a fresh sequence so single-key
// bindings are not swallowed by an abandoned chord.
func (m *Matcher) Feed(key string) (def Definition, matched bool, pending bool) {
	m.pending = append(m.pending, key)

	def, matched, pending = m.resolve()
	if matched || pending {
		if matched {
			m.pending = nil
		}
		return def, matched, pending
	}

	// Abandoned chord: retry the last key on its own.
	if len(m.pending) > 1 {
		m.pending = []string{key}
		def, matched, pending = m.resolve()
		if matched {
			m.pending = nil
		}
		if matched || pending {
			return def, matched, pending
		}
	}

	m.pending = nil
	return Definition{}, false, false
}

func (m *Matcher) resolve() (Definition, bool, bool) {
	prefix := false
	for _, def := range m.reg.All() {
		if !m.reg.Enabled(def.ID) {
			continue
		}
		keys, ok := m.reg.EffectiveKeys(def.ID)
		if !ok {
			continue
		}
		if keysEqual(keys, m.pending) {
			return def, true, false
		}
		if isPrefix(m.pending, keys) {
			prefix = true
		}
	}
	return Definition{}, false, prefix
}

// Reset clears any pending partial sequence.
func (m *Matcher) Reset() {
	m.pending = nil
}

// Pending returns the buffered partial sequence, for status display.
func (m *Matcher) Pending() []string {
	return copyKeys(m.pending)
}

// isPrefix reports whether seq is a strict prefix of keys.
func isPrefix(seq, keys []string) bool {
	if len(seq) >= len(keys) {
		return false
	}
	for i := range seq {
		if seq[i] != keys[i] {
			return false
		}
	}
	return true
}
