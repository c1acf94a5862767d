package shortcuts

import (
	"runtime"
	"strings"
)

// Modifier is the logical platform modifier key used in shortcut display.
type Modifier string

const (
	// ModifierMeta is the command key on Mac platforms.
	ModifierMeta Modifier = "meta"

	// ModifierCtrl is the control key everywhere else.
	ModifierCtrl Modifier = "ctrl"
)

// Display returns the user-facing form of the modifier.
func (m Modifier) Display() string {
	if m == ModifierMeta {
		return "⌘"
	}
	return "Ctrl"
}

// DetectPlatform returns the host platform identifier. It is the default
// platform source for a Registry; tests inject fixed identifiers instead.
func DetectPlatform() string {
	return runtime.GOOS
}

// ModifierFor classifies a platform identifier. Identifiers containing a
// Mac-identifying substring (browser-style "MacIntel" as well as Go's
// "darwin") map to meta; everything else maps to ctrl.
func ModifierFor(platform string) Modifier {
	p := strings.ToLower(platform)
	if strings.Contains(p, "mac") || strings.Contains(p, "darwin") {
		return ModifierMeta
	}
	return ModifierCtrl
}
