package shortcuts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDestroyed is returned by operations on a registry after Destroy.
var ErrDestroyed = errors.New("shortcut registry destroyed")

// NotFoundError indicates an operation referenced an unregistered shortcut id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Shortcut %s not found", e.ID)
}

// ConflictError indicates a requested key binding collides with another
// shortcut's effective binding.
type ConflictError struct {
	// ID is the shortcut already holding the keys.
	ID   string
	Keys []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("keys %q conflict with shortcut %s", strings.Join(e.Keys, " "), e.ID)
}

// ImportError indicates a customization import payload was not valid JSON.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed: %v", e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// UnknownShortcutError indicates a well-formed import payload referenced an
// id that is not currently registered.
type UnknownShortcutError struct {
	ID string
}

func (e *UnknownShortcutError) Error() string {
	return fmt.Sprintf("Unknown shortcut: %s", e.ID)
}
