package shortcuts

import "sync"

var (
	defaultMu   sync.Mutex
	defaultReg  *Registry
	defaultOpts []Option
)

// SetDefaultOptions configures how the process-wide registry is constructed.
// The composition root calls this once before the first Default call, e.g.
// to inject the file-backed store.
func SetDefaultOptions(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOpts = opts
}

// Default returns the process-wide registry, creating it on first call.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultReg == nil {
		defaultReg = New(defaultOpts...)
	}
	return defaultReg
}

// ResetDefault destroys the process-wide registry so the next Default call
// constructs a fresh instance. Persisted customizations survive resets.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultReg != nil {
		defaultReg.Destroy()
		defaultReg = nil
	}
}
