/*
Package shortcuts provides customizable keyboard shortcut management.

# Overview

The shortcuts package owns the mapping from shortcut id to key binding:
registration, conflict detection, per-user customization, persistence and
change notification. Application code registers shortcuts at startup; the
TUI matches incoming keys against effective bindings and fires actions.

# Key Concepts

Effective binding:
  - Each shortcut has default keys from its Definition
  - A persisted Customization overrides keys and/or the enabled flag
  - EffectiveKeys resolves customization first, defaults second

Conflicts:
  - Two distinct shortcuts sharing one effective key sequence conflict
  - Registration-time collisions are logged warnings, never rejections
  - Customize rejects colliding keys with a ConflictError

Persistence:
  - The customization map is serialized as JSON under a single store key
  - The Store interface abstracts the backing key-value layer
  - Export/Import round-trip the map exactly; Import rejects unknown ids

# Components

Registry (registry.go):
  - Central shortcut storage with registration-order iteration
  - Customization, enable/disable, reset-to-default operations
  - Change listeners with unsubscribe functions

Matcher (matcher.go):
  - Incremental key-sequence resolution for multi-key chords
  - Prefix tracking, with abandoned chords retried as fresh input

Platform (platform.go):
  - Pure classification of a platform identifier string to a modifier
  - "Mac"-like identifiers map to meta (⌘), everything else to ctrl

Singleton (singleton.go):
  - Default/ResetDefault accessors over explicit New construction
  - ResetDefault guarantees a new instance identity on the next Default

# Error Taxonomy

All failures are synchronous and typed: NotFoundError (unregistered id),
ConflictError (binding collision), ImportError (malformed payload),
UnknownShortcutError (import entry for an unregistered id). None are
retried internally; callers surface them to the UI.

# Example Usage

	reg := shortcuts.New(shortcuts.WithStore(fileStore))
	reg.Register(shortcuts.Definition{
		ID:          "jobs.open",
		Category:    "Navigation",
		Description: "Open the job feed",
		DefaultKeys: []string{"g", "j"},
		Action:      openJobs,
	})

	unsubscribe := reg.OnChange(refreshHelp)
	defer unsubscribe()

	if err := reg.Customize("jobs.open", []string{"g", "f"}, nil); err != nil {
		var conflict *shortcuts.ConflictError
		if errors.As(err, &conflict) {
			// surface to settings UI
		}
	}
*/
package shortcuts
