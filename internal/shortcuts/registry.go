package shortcuts

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Registry is the authoritative set of registered shortcuts, their effective
// key bindings and enabled state. All methods are safe for concurrent use.
//
// The registry is the sole writer of its storage key. Customizations loaded
// at construction are applied to matching ids as they register, so persisted
// state survives registry lifecycles.
type Registry struct {
	mu       sync.Mutex
	store    Store
	platform func() string
	warnf    func(format string, args ...interface{})

	order     []string
	defs      map[string]Definition
	enabled   map[string]bool
	custom    map[string]Customization
	listeners map[int]func()
	nextSub   int
	destroyed bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithStore sets the persistence backend. Defaults to an in-process map.
func WithStore(s Store) Option {
	return func(r *Registry) { r.store = s }
}

// WithPlatformFunc sets the platform-identifier source used for modifier
// detection. Defaults to DetectPlatform.
func WithPlatformFunc(f func() string) Option {
	return func(r *Registry) { r.platform = f }
}

// WithWarnFunc sets the sink for non-fatal warnings (registration-time key
// conflicts). Defaults to the standard logger.
func WithWarnFunc(f func(format string, args ...interface{})) Option {
	return func(r *Registry) { r.warnf = f }
}

// New creates a registry, loading any previously persisted customizations
// from the store.
func New(opts ...Option) *Registry {
	r := &Registry{
		store:     newMemStore(),
		platform:  DetectPlatform,
		warnf:     log.Printf,
		defs:      make(map[string]Definition),
		enabled:   make(map[string]bool),
		custom:    make(map[string]Customization),
		listeners: make(map[int]func()),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.loadPersisted()
	return r
}

// loadPersisted reads the customization map from the store. A missing key or
// unreadable payload leaves the registry with an empty map; persistence is
// best-effort at construction time.
func (r *Registry) loadPersisted() {
	raw, ok, err := r.store.Get(StorageKey)
	if err != nil || !ok {
		return
	}

	var custom map[string]Customization
	if err := json.Unmarshal([]byte(raw), &custom); err != nil {
		r.warnf("shortcuts: ignoring corrupt customization data: %v", err)
		return
	}

	r.custom = custom
	if r.custom == nil {
		r.custom = make(map[string]Customization)
	}
}

// Register adds a shortcut definition. The definition must have a unique id
// and a non-empty default key sequence.
//
// If another registered shortcut already holds the same effective key
// sequence, a warning is emitted but the shortcut is still registered;
// registration-time collisions are non-fatal.
func (r *Registry) Register(def Definition) error {
	r.mu.Lock()

	if r.destroyed {
		r.mu.Unlock()
		return ErrDestroyed
	}
	if def.ID == "" {
		r.mu.Unlock()
		return fmt.Errorf("shortcut definition missing id")
	}
	if len(def.DefaultKeys) == 0 {
		r.mu.Unlock()
		return fmt.Errorf("shortcut %s has no default keys", def.ID)
	}
	if _, exists := r.defs[def.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("shortcut %s already registered", def.ID)
	}

	def.DefaultKeys = copyKeys(def.DefaultKeys)

	effective := def.DefaultKeys
	enabled := def.defaultEnabled()
	if c, ok := r.custom[def.ID]; ok {
		if len(c.Keys) > 0 {
			effective = c.Keys
		}
		enabled = c.Enabled
	}

	if other, ok := r.conflictLocked(effective, def.ID); ok {
		r.warnf("shortcuts: %s and %s share the same keys %v", def.ID, other.ID, effective)
	}

	r.defs[def.ID] = def
	r.enabled[def.ID] = enabled
	r.order = append(r.order, def.ID)

	r.notifyLocked()
	return nil
}

// Unregister removes a shortcut and any persisted customization for it.
// Unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()

	if r.destroyed {
		r.mu.Unlock()
		return
	}
	if _, ok := r.defs[id]; !ok {
		r.mu.Unlock()
		return
	}

	delete(r.defs, id)
	delete(r.enabled, id)
	delete(r.custom, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.persistLocked()
	r.notifyLocked()
}

// Customize overrides a shortcut's key sequence. enabled optionally overrides
// the activation state; nil keeps the shortcut's current state.
//
// Returns *NotFoundError when id is not registered and *ConflictError when
// keys exactly match another shortcut's effective binding. Customizing a
// shortcut to its own current keys is not a conflict.
func (r *Registry) Customize(id string, keys []string, enabled *bool) error {
	r.mu.Lock()

	if r.destroyed {
		r.mu.Unlock()
		return ErrDestroyed
	}
	if _, ok := r.defs[id]; !ok {
		r.mu.Unlock()
		return &NotFoundError{ID: id}
	}
	if len(keys) == 0 {
		r.mu.Unlock()
		return fmt.Errorf("shortcut %s: empty key sequence", id)
	}
	if other, ok := r.conflictLocked(keys, id); ok {
		r.mu.Unlock()
		return &ConflictError{ID: other.ID, Keys: copyKeys(keys)}
	}

	state := r.enabled[id]
	if enabled != nil {
		state = *enabled
	}

	r.custom[id] = Customization{Keys: copyKeys(keys), Enabled: state}
	r.enabled[id] = state

	if err := r.persistLocked(); err != nil {
		r.mu.Unlock()
		return err
	}

	r.notifyLocked()
	return nil
}

// ResetToDefault restores a shortcut's keys and enabled state to its
// definition and removes the stored customization. Unknown ids are ignored.
func (r *Registry) ResetToDefault(id string) error {
	r.mu.Lock()

	if r.destroyed {
		r.mu.Unlock()
		return ErrDestroyed
	}
	def, ok := r.defs[id]
	if !ok {
		r.mu.Unlock()
		return nil
	}

	delete(r.custom, id)
	r.enabled[id] = def.defaultEnabled()

	if err := r.persistLocked(); err != nil {
		r.mu.Unlock()
		return err
	}

	r.notifyLocked()
	return nil
}

// ResetAllToDefaults restores every registered shortcut to its default keys
// and enabled state. Listeners are notified once after completion.
func (r *Registry) ResetAllToDefaults() error {
	r.mu.Lock()

	if r.destroyed {
		r.mu.Unlock()
		return ErrDestroyed
	}

	for _, id := range r.order {
		delete(r.custom, id)
		r.enabled[id] = r.defs[id].defaultEnabled()
	}

	if err := r.persistLocked(); err != nil {
		r.mu.Unlock()
		return err
	}

	r.notifyLocked()
	return nil
}

// Conflict returns the first registered shortcut (in registration order)
// whose effective keys exactly equal keys, skipping excludeID. The second
// return value reports whether a conflict was found.
func (r *Registry) Conflict(keys []string, excludeID string) (Definition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.conflictLocked(keys, excludeID)
}

func (r *Registry) conflictLocked(keys []string, excludeID string) (Definition, bool) {
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		if keysEqual(r.effectiveKeysLocked(id), keys) {
			return r.defs[id], true
		}
	}
	return Definition{}, false
}

// Enabled reports whether a shortcut is active. Unknown ids report false.
func (r *Registry) Enabled(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.enabled[id]
}

// SetEnabled toggles a shortcut's activation state. The flag is persisted
// alongside any existing key customization, or as an enabled-only record.
func (r *Registry) SetEnabled(id string, enabled bool) error {
	r.mu.Lock()

	if r.destroyed {
		r.mu.Unlock()
		return ErrDestroyed
	}
	if _, ok := r.defs[id]; !ok {
		r.mu.Unlock()
		return &NotFoundError{ID: id}
	}

	c := r.custom[id]
	c.Enabled = enabled
	r.custom[id] = c
	r.enabled[id] = enabled

	if err := r.persistLocked(); err != nil {
		r.mu.Unlock()
		return err
	}

	r.notifyLocked()
	return nil
}

// EffectiveKeys returns the key sequence currently in force for a shortcut:
// the customized keys when an override exists, the default keys otherwise.
// The second return value is false for unknown ids.
func (r *Registry) EffectiveKeys(id string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[id]; !ok {
		return nil, false
	}
	return copyKeys(r.effectiveKeysLocked(id)), true
}

func (r *Registry) effectiveKeysLocked(id string) []string {
	if c, ok := r.custom[id]; ok && len(c.Keys) > 0 {
		return c.Keys
	}
	return r.defs[id].DefaultKeys
}

// All returns every registered shortcut in registration order.
func (r *Registry) All() []Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// ByCategory returns the registered shortcuts whose category matches exactly,
// in registration order. An unmatched category yields an empty slice.
func (r *Registry) ByCategory(category string) []Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Definition{}
	for _, id := range r.order {
		if def := r.defs[id]; def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// Categories returns the distinct categories of registered shortcuts, sorted.
func (r *Registry) Categories() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	for _, id := range r.order {
		cat := r.defs[id].Category
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	sort.Strings(out)
	return out
}

// PlatformModifier returns the logical modifier key for the host platform.
func (r *Registry) PlatformModifier() Modifier {
	return ModifierFor(r.platform())
}

// PlatformModifierDisplay returns the display form of the host platform's
// modifier key ("⌘" on Mac platforms, "Ctrl" elsewhere).
func (r *Registry) PlatformModifierDisplay() string {
	return ModifierFor(r.platform()).Display()
}

// Export serializes the customization map for the currently registered
// shortcuts to JSON. The output round-trips through Import.
func (r *Registry) Export() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Customization, len(r.custom))
	for id, c := range r.custom {
		if _, ok := r.defs[id]; ok {
			out[id] = c
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to export shortcuts: %w", err)
	}
	return string(data), nil
}

// Import parses a customization map produced by Export and applies it.
//
// Returns *ImportError when the payload is not valid JSON and
// *UnknownShortcutError when any entry references an unregistered id; in
// both cases nothing is applied. On success every entry is applied and
// persisted, and listeners are notified once.
func (r *Registry) Import(data string) error {
	r.mu.Lock()

	if r.destroyed {
		r.mu.Unlock()
		return ErrDestroyed
	}

	var incoming map[string]Customization
	if err := json.Unmarshal([]byte(data), &incoming); err != nil {
		r.mu.Unlock()
		return &ImportError{Err: err}
	}

	ids := make([]string, 0, len(incoming))
	for id := range incoming {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, ok := r.defs[id]; !ok {
			r.mu.Unlock()
			return &UnknownShortcutError{ID: id}
		}
	}

	for _, id := range ids {
		c := incoming[id]
		c.Keys = copyKeys(c.Keys)
		r.custom[id] = c
		r.enabled[id] = c.Enabled
	}

	if err := r.persistLocked(); err != nil {
		r.mu.Unlock()
		return err
	}

	r.notifyLocked()
	return nil
}

// OnChange registers a listener invoked after every mutating operation. The
// returned function removes the listener; calling it more than once is safe.
func (r *Registry) OnChange(listener func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return func() {}
	}

	id := r.nextSub
	r.nextSub++
	r.listeners[id] = listener

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Destroy releases all listeners and in-memory state. The registry is
// unusable afterwards; persisted customizations are left untouched.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroyed = true
	r.listeners = make(map[int]func())
	r.defs = make(map[string]Definition)
	r.enabled = make(map[string]bool)
	r.custom = make(map[string]Customization)
	r.order = nil
}

// persistLocked writes the customization map for registered shortcuts to the
// store. Caller holds the lock.
func (r *Registry) persistLocked() error {
	out := make(map[string]Customization, len(r.custom))
	for id, c := range r.custom {
		if _, ok := r.defs[id]; ok {
			out[id] = c
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to serialize shortcuts: %w", err)
	}
	if err := r.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist shortcuts: %w", err)
	}
	return nil
}

// notifyLocked snapshots the listener set, releases the lock and invokes
// each listener. Caller holds the lock; the lock is released on return.
func (r *Registry) notifyLocked() {
	snapshot := make([]func(), 0, len(r.listeners))
	for _, fn := range r.listeners {
		snapshot = append(snapshot, fn)
	}
	r.mu.Unlock()

	for _, fn := range snapshot {
		fn()
	}
}
