package shortcuts

import "testing"

func TestModifierFor(t *testing.T) {
	tests := []struct {
		platform string
		want     Modifier
		display  string
	}{
		{platform: "MacIntel", want: ModifierMeta, display: "⌘"},
		{platform: "MacPPC", want: ModifierMeta, display: "⌘"},
		{platform: "darwin", want: ModifierMeta, display: "⌘"},
		{platform: "Win32", want: ModifierCtrl, display: "Ctrl"},
		{platform: "linux", want: ModifierCtrl, display: "Ctrl"},
		{platform: "Linux x86_64", want: ModifierCtrl, display: "Ctrl"},
		{platform: "", want: ModifierCtrl, display: "Ctrl"},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			got := ModifierFor(tt.platform)
			if got != tt.want {
				t.Errorf("ModifierFor(%q) = %s, want %s", tt.platform, got, tt.want)
			}
			if got.Display() != tt.display {
				t.Errorf("Display() = %s, want %s", got.Display(), tt.display)
			}
		})
	}
}

func TestRegistry_PlatformModifier(t *testing.T) {
	mac := New(WithPlatformFunc(func() string { return "MacIntel" }))
	if mac.PlatformModifier() != ModifierMeta {
		t.Errorf("PlatformModifier() = %s, want meta", mac.PlatformModifier())
	}
	if mac.PlatformModifierDisplay() != "⌘" {
		t.Errorf("PlatformModifierDisplay() = %s, want ⌘", mac.PlatformModifierDisplay())
	}

	win := New(WithPlatformFunc(func() string { return "Win32" }))
	if win.PlatformModifier() != ModifierCtrl {
		t.Errorf("PlatformModifier() = %s, want ctrl", win.PlatformModifier())
	}
	if win.PlatformModifierDisplay() != "Ctrl" {
		t.Errorf("PlatformModifierDisplay() = %s, want Ctrl", win.PlatformModifierDisplay())
	}
}
