package shortcuts

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func boolPtr(b bool) *bool {
	return &b
}

// newTestRegistry builds a registry over store (a fresh memStore when nil)
// and collects warnings instead of logging them.
func newTestRegistry(t *testing.T, store Store) (*Registry, *[]string) {
	t.Helper()

	if store == nil {
		store = newMemStore()
	}

	var warnings []string
	reg := New(
		WithStore(store),
		WithWarnFunc(func(format string, args ...interface{}) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		}),
	)
	return reg, &warnings
}

func mustRegister(t *testing.T, reg *Registry, def Definition) {
	t.Helper()
	if err := reg.Register(def); err != nil {
		t.Fatalf("Register(%s) failed: %v", def.ID, err)
	}
}

func TestRegister_AppearsInAll(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	mustRegister(t, reg, Definition{ID: "a", Category: "nav", DefaultKeys: []string{"g", "h"}})
	mustRegister(t, reg, Definition{ID: "b", Category: "nav", DefaultKeys: []string{"g", "j"}})

	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d shortcuts, want 2", len(all))
	}
	if all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("All() order = [%s %s], want registration order [a b]", all[0].ID, all[1].ID)
	}
}

func TestRegister_DuplicateKeysWarnsButRegisters(t *testing.T) {
	reg, warnings := newTestRegistry(t, nil)

	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})
	mustRegister(t, reg, Definition{ID: "b", DefaultKeys: []string{"g", "h"}})

	if got := len(reg.All()); got != 2 {
		t.Errorf("All() returned %d shortcuts, want 2", got)
	}
	if len(*warnings) == 0 {
		t.Error("expected a conflict warning for duplicate default keys")
	}
}

func TestRegister_Validation(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "taken", DefaultKeys: []string{"t"}})

	tests := []struct {
		name string
		def  Definition
	}{
		{name: "missing id", def: Definition{DefaultKeys: []string{"x"}}},
		{name: "missing default keys", def: Definition{ID: "x"}},
		{name: "duplicate id", def: Definition{ID: "taken", DefaultKeys: []string{"y"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := reg.Register(tt.def); err == nil {
				t.Error("Register() succeeded, want error")
			}
		})
	}
}

func TestRegister_DisabledByDefinition(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	mustRegister(t, reg, Definition{ID: "off", DefaultKeys: []string{"o"}, Enabled: boolPtr(false)})
	mustRegister(t, reg, Definition{ID: "on", DefaultKeys: []string{"n"}})

	if reg.Enabled("off") {
		t.Error("Enabled(off) = true, want false")
	}
	if !reg.Enabled("on") {
		t.Error("Enabled(on) = false, want true")
	}
}

func TestCustomize_RoundTripRestoresDefaults(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})

	if err := reg.Customize("a", []string{"x", "y"}, nil); err != nil {
		t.Fatalf("Customize() failed: %v", err)
	}
	keys, ok := reg.EffectiveKeys("a")
	if !ok || strings.Join(keys, " ") != "x y" {
		t.Errorf("EffectiveKeys(a) = %v, want [x y]", keys)
	}

	if err := reg.ResetToDefault("a"); err != nil {
		t.Fatalf("ResetToDefault() failed: %v", err)
	}
	keys, ok = reg.EffectiveKeys("a")
	if !ok || strings.Join(keys, " ") != "g h" {
		t.Errorf("EffectiveKeys(a) after reset = %v, want [g h]", keys)
	}
}

func TestCustomize_NotFound(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	err := reg.Customize("ghost", []string{"x"}, nil)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Customize(ghost) error = %T, want *NotFoundError", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error %q should name the missing id", err.Error())
	}
}

func TestCustomize_ConflictRejected(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "existing", DefaultKeys: []string{"e", "x"}})
	mustRegister(t, reg, Definition{ID: "target", DefaultKeys: []string{"c", "s", "t"}})

	err := reg.Customize("target", []string{"e", "x"}, nil)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Customize() error = %T, want *ConflictError", err)
	}
	if !strings.Contains(err.Error(), "conflict") {
		t.Errorf("error %q should contain 'conflict'", err.Error())
	}
	if conflict.ID != "existing" {
		t.Errorf("conflict.ID = %s, want existing", conflict.ID)
	}

	// The failed customization must not change the effective binding.
	keys, _ := reg.EffectiveKeys("target")
	if strings.Join(keys, " ") != "c s t" {
		t.Errorf("EffectiveKeys(target) = %v after failed customize, want defaults", keys)
	}
}

func TestCustomize_OwnKeysNotAConflict(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})

	if err := reg.Customize("a", []string{"g", "h"}, nil); err != nil {
		t.Errorf("Customize to own current keys failed: %v", err)
	}
}

func TestConflict_Query(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"k"}})
	mustRegister(t, reg, Definition{ID: "b", DefaultKeys: []string{"l"}})

	if err := reg.Customize("a", []string{"z", "z"}, nil); err != nil {
		t.Fatalf("Customize() failed: %v", err)
	}

	if def, ok := reg.Conflict([]string{"z", "z"}, ""); !ok || def.ID != "a" {
		t.Errorf("Conflict(zz) = (%s, %v), want (a, true)", def.ID, ok)
	}
	if _, ok := reg.Conflict([]string{"z", "z"}, "a"); ok {
		t.Error("Conflict(zz, exclude=a) found a match, want none")
	}
	if _, ok := reg.Conflict([]string{"q"}, ""); ok {
		t.Error("Conflict(q) found a match, want none")
	}
}

func TestSetEnabled_PersistsAlongsideCustomization(t *testing.T) {
	store := newMemStore()
	reg, _ := newTestRegistry(t, store)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})

	if err := reg.SetEnabled("a", false); err != nil {
		t.Fatalf("SetEnabled() failed: %v", err)
	}
	if reg.Enabled("a") {
		t.Error("Enabled(a) = true after SetEnabled(false)")
	}

	// An enabled-only override must not disturb the effective keys.
	keys, _ := reg.EffectiveKeys("a")
	if strings.Join(keys, " ") != "g h" {
		t.Errorf("EffectiveKeys(a) = %v, want defaults", keys)
	}

	var setErr *NotFoundError
	if err := reg.SetEnabled("ghost", true); !errors.As(err, &setErr) {
		t.Errorf("SetEnabled(ghost) error = %T, want *NotFoundError", err)
	}
}

func TestEffectiveKeys_UnknownID(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	if keys, ok := reg.EffectiveKeys("ghost"); ok || keys != nil {
		t.Errorf("EffectiveKeys(ghost) = (%v, %v), want (nil, false)", keys, ok)
	}
}

func TestByCategory(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "a", Category: "nav", DefaultKeys: []string{"1"}})
	mustRegister(t, reg, Definition{ID: "b", Category: "jobs", DefaultKeys: []string{"2"}})
	mustRegister(t, reg, Definition{ID: "c", Category: "nav", DefaultKeys: []string{"3"}})

	nav := reg.ByCategory("nav")
	if len(nav) != 2 || nav[0].ID != "a" || nav[1].ID != "c" {
		t.Errorf("ByCategory(nav) = %v, want [a c]", nav)
	}

	if got := reg.ByCategory("missing"); got == nil || len(got) != 0 {
		t.Errorf("ByCategory(missing) = %v, want empty slice", got)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})
	mustRegister(t, reg, Definition{ID: "b", DefaultKeys: []string{"g", "j"}})

	if err := reg.Customize("a", []string{"x"}, nil); err != nil {
		t.Fatalf("Customize() failed: %v", err)
	}
	if err := reg.SetEnabled("b", false); err != nil {
		t.Fatalf("SetEnabled() failed: %v", err)
	}

	exported, err := reg.Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	// Fresh registry, same ids, state restored purely through Import.
	fresh, _ := newTestRegistry(t, nil)
	mustRegister(t, fresh, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})
	mustRegister(t, fresh, Definition{ID: "b", DefaultKeys: []string{"g", "j"}})

	if err := fresh.Import(exported); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	keys, _ := fresh.EffectiveKeys("a")
	if strings.Join(keys, " ") != "x" {
		t.Errorf("EffectiveKeys(a) after import = %v, want [x]", keys)
	}
	if fresh.Enabled("b") {
		t.Error("Enabled(b) = true after import, want false")
	}
}

func TestImport_MalformedJSON(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	err := reg.Import("{not json")

	var importErr *ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("Import() error = %T, want *ImportError", err)
	}
	if !strings.Contains(err.Error(), "import failed") {
		t.Errorf("error %q should contain 'import failed'", err.Error())
	}
}

func TestImport_UnknownIDRejected(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "exportable", DefaultKeys: []string{"e"}})

	err := reg.Import(`{"unknown-shortcut":{"keys":["u"],"enabled":true}}`)

	var unknown *UnknownShortcutError
	if !errors.As(err, &unknown) {
		t.Fatalf("Import() error = %T, want *UnknownShortcutError", err)
	}
	if !strings.Contains(err.Error(), "Unknown shortcut: unknown-shortcut") {
		t.Errorf("error %q should contain 'Unknown shortcut: unknown-shortcut'", err.Error())
	}
}

func TestImport_PartialValidationAppliesNothing(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})

	payload := `{"a":{"keys":["x"],"enabled":true},"missing":{"keys":["m"],"enabled":true}}`
	if err := reg.Import(payload); err == nil {
		t.Fatal("Import() succeeded, want unknown-shortcut error")
	}

	keys, _ := reg.EffectiveKeys("a")
	if strings.Join(keys, " ") != "g h" {
		t.Errorf("EffectiveKeys(a) = %v after rejected import, want defaults", keys)
	}
}

func TestOnChange_ListenerLifecycle(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	fired := 0
	unsubscribe := reg.OnChange(func() { fired++ })

	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g"}})
	if fired != 1 {
		t.Errorf("listener fired %d times after register, want 1", fired)
	}

	if err := reg.Customize("a", []string{"x"}, nil); err != nil {
		t.Fatalf("Customize() failed: %v", err)
	}
	if fired != 2 {
		t.Errorf("listener fired %d times after customize, want 2", fired)
	}

	unsubscribe()
	unsubscribe() // safe to call twice

	reg.Unregister("a")
	if fired != 2 {
		t.Errorf("listener fired %d times after unsubscribe, want 2", fired)
	}
}

func TestOnChange_MultipleListeners(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	var first, second int
	unsubFirst := reg.OnChange(func() { first++ })
	reg.OnChange(func() { second++ })

	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g"}})
	unsubFirst()
	mustRegister(t, reg, Definition{ID: "b", DefaultKeys: []string{"h"}})

	if first != 1 {
		t.Errorf("first listener fired %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("second listener fired %d times, want 2", second)
	}
}

func TestResetAllToDefaults_SingleNotification(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g"}})
	mustRegister(t, reg, Definition{ID: "b", DefaultKeys: []string{"h"}})

	if err := reg.Customize("a", []string{"x"}, nil); err != nil {
		t.Fatalf("Customize() failed: %v", err)
	}
	if err := reg.SetEnabled("b", false); err != nil {
		t.Fatalf("SetEnabled() failed: %v", err)
	}

	fired := 0
	reg.OnChange(func() { fired++ })

	if err := reg.ResetAllToDefaults(); err != nil {
		t.Fatalf("ResetAllToDefaults() failed: %v", err)
	}

	if fired != 1 {
		t.Errorf("listener fired %d times, want 1", fired)
	}
	keys, _ := reg.EffectiveKeys("a")
	if strings.Join(keys, " ") != "g" {
		t.Errorf("EffectiveKeys(a) = %v, want defaults", keys)
	}
	if !reg.Enabled("b") {
		t.Error("Enabled(b) = false after reset, want true")
	}
}

func TestPersistence_SurvivesRegistryLifecycle(t *testing.T) {
	store := newMemStore()

	reg, _ := newTestRegistry(t, store)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})
	if err := reg.Customize("a", []string{"x", "y"}, boolPtr(false)); err != nil {
		t.Fatalf("Customize() failed: %v", err)
	}
	reg.Destroy()

	// A later instance over the same store sees the customization as soon
	// as the id registers again.
	next, _ := newTestRegistry(t, store)
	mustRegister(t, next, Definition{ID: "a", DefaultKeys: []string{"g", "h"}})

	keys, _ := next.EffectiveKeys("a")
	if strings.Join(keys, " ") != "x y" {
		t.Errorf("EffectiveKeys(a) in new instance = %v, want [x y]", keys)
	}
	if next.Enabled("a") {
		t.Error("Enabled(a) = true in new instance, want persisted false")
	}
}

func TestUnregister_RemovesCustomization(t *testing.T) {
	store := newMemStore()
	reg, _ := newTestRegistry(t, store)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g"}})

	if err := reg.Customize("a", []string{"x"}, nil); err != nil {
		t.Fatalf("Customize() failed: %v", err)
	}
	reg.Unregister("a")

	// Re-registering must come back with defaults, not the stale override.
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g"}})
	keys, _ := reg.EffectiveKeys("a")
	if strings.Join(keys, " ") != "g" {
		t.Errorf("EffectiveKeys(a) after unregister+register = %v, want [g]", keys)
	}

	// Unknown ids are tolerated.
	reg.Unregister("ghost")
}

func TestDestroy_RejectsFurtherMutation(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "a", DefaultKeys: []string{"g"}})

	reg.Destroy()

	if err := reg.Register(Definition{ID: "b", DefaultKeys: []string{"h"}}); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Register after Destroy = %v, want ErrDestroyed", err)
	}
	if err := reg.Customize("a", []string{"x"}, nil); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Customize after Destroy = %v, want ErrDestroyed", err)
	}
	if got := reg.All(); len(got) != 0 {
		t.Errorf("All() after Destroy returned %d shortcuts, want 0", len(got))
	}
}

func TestDefault_SingletonIdentity(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	first := Default()
	if Default() != first {
		t.Error("consecutive Default() calls returned different instances")
	}

	ResetDefault()
	if Default() == first {
		t.Error("Default() after ResetDefault returned the old instance")
	}
}
