package shortcuts

import "testing"

func newMatcherFixture(t *testing.T) (*Registry, *Matcher) {
	t.Helper()

	reg, _ := newTestRegistry(t, nil)
	mustRegister(t, reg, Definition{ID: "jobs", DefaultKeys: []string{"g", "j"}})
	mustRegister(t, reg, Definition{ID: "apps", DefaultKeys: []string{"g", "a"}})
	mustRegister(t, reg, Definition{ID: "help", DefaultKeys: []string{"?"}})

	return reg, NewMatcher(reg)
}

func TestMatcher_SingleKey(t *testing.T) {
	_, m := newMatcherFixture(t)

	def, matched, pending := m.Feed("?")
	if !matched || pending {
		t.Fatalf("Feed(?) = (matched=%v, pending=%v), want complete match", matched, pending)
	}
	if def.ID != "help" {
		t.Errorf("matched %s, want help", def.ID)
	}
}

func TestMatcher_ChordSequence(t *testing.T) {
	_, m := newMatcherFixture(t)

	_, matched, pending := m.Feed("g")
	if matched || !pending {
		t.Fatalf("Feed(g) = (matched=%v, pending=%v), want pending prefix", matched, pending)
	}

	def, matched, _ := m.Feed("j")
	if !matched || def.ID != "jobs" {
		t.Errorf("Feed(g j) matched %q (%v), want jobs", def.ID, matched)
	}

	// Buffer resets after a match; the next chord starts fresh.
	_, _, pending = m.Feed("g")
	if !pending {
		t.Error("Feed(g) after match should be pending again")
	}
	def, matched, _ = m.Feed("a")
	if !matched || def.ID != "apps" {
		t.Errorf("Feed(g a) matched %q (%v), want apps", def.ID, matched)
	}
}

func TestMatcher_AbandonedChordRetriesLastKey(t *testing.T) {
	_, m := newMatcherFixture(t)

	m.Feed("g")
	def, matched, _ := m.Feed("?")
	if !matched || def.ID != "help" {
		t.Errorf("Feed(g ?) matched %q (%v), want help via retry", def.ID, matched)
	}
}

func TestMatcher_DisabledShortcutIgnored(t *testing.T) {
	reg, m := newMatcherFixture(t)

	if err := reg.SetEnabled("help", false); err != nil {
		t.Fatalf("SetEnabled() failed: %v", err)
	}

	_, matched, pending := m.Feed("?")
	if matched || pending {
		t.Errorf("Feed(?) = (matched=%v, pending=%v) for disabled shortcut, want no match", matched, pending)
	}
}

func TestMatcher_FollowsCustomization(t *testing.T) {
	reg, m := newMatcherFixture(t)

	if err := reg.Customize("help", []string{"F1"}, nil); err != nil {
		t.Fatalf("Customize() failed: %v", err)
	}

	if _, matched, _ := m.Feed("?"); matched {
		t.Error("old binding still matches after customization")
	}
	def, matched, _ := m.Feed("F1")
	if !matched || def.ID != "help" {
		t.Errorf("Feed(F1) matched %q (%v), want help", def.ID, matched)
	}
}

func TestMatcher_Reset(t *testing.T) {
	_, m := newMatcherFixture(t)

	m.Feed("g")
	m.Reset()

	if got := m.Pending(); len(got) != 0 {
		t.Errorf("Pending() = %v after Reset, want empty", got)
	}
	if _, matched, _ := m.Feed("j"); matched {
		t.Error("Feed(j) matched after Reset, want no match")
	}
}
