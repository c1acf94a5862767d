package shortcuts

// StorageKey is the single durable-store key under which the customization
// map is persisted.
const StorageKey = "keyboard-shortcuts"

// Definition describes a keyboard shortcut registered by application code.
type Definition struct {
	// ID uniquely identifies the shortcut (e.g. "jobs.open").
	ID string

	// Category groups shortcuts for display in help and settings views.
	Category string

	// Description is the human-readable label shown to users.
	Description string

	// DefaultKeys is the key sequence that triggers the shortcut unless a
	// customization overrides it. Must be non-empty.
	DefaultKeys []string

	// Action is invoked when the shortcut fires. May be nil for shortcuts
	// registered outside an interactive context (e.g. CLI inspection).
	Action func()

	// Enabled is the initial activation state. nil means enabled.
	Enabled *bool
}

// defaultEnabled resolves the optional Enabled flag.
func (d Definition) defaultEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// Customization is a persisted override of a shortcut's keys and enabled
// flag. Keys may be empty when only the enabled flag was overridden.
type Customization struct {
	Keys    []string `json:"keys"`
	Enabled bool     `json:"enabled"`
}

// Store is the persistence port for shortcut customizations. The registry is
// the sole writer of its key; implementations do not need to synchronize.
type Store interface {
	// Get returns the value stored under key, reporting whether it exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// memStore is the zero-configuration Store used when none is injected.
type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

// keysEqual reports whether two key sequences are identical.
func keysEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// copyKeys returns a defensive copy of a key sequence.
func copyKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
