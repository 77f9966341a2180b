package keys

import "testing"

func TestRegistryUniqueness(t *testing.T) {
	seenKeys := make(map[string]bool)
	seenActions := make(map[Action]bool)
	for _, sc := range All() {
		if seenKeys[sc.Keys] {
			t.Errorf("duplicate combo %q", sc.Keys)
		}
		if seenActions[sc.Action] {
			t.Errorf("duplicate action %q", sc.Action)
		}
		seenKeys[sc.Keys] = true
		seenActions[sc.Action] = true
	}
}

func TestLookup(t *testing.T) {
	sc, ok := Lookup("space")
	if !ok {
		t.Fatal("Lookup(space) not found")
	}
	if sc.Action != ActionToggleSelected {
		t.Errorf("Lookup(space).Action = %q, want %q", sc.Action, ActionToggleSelected)
	}

	if _, ok := Lookup("mod+z"); ok {
		t.Error("Lookup(mod+z) unexpectedly found")
	}
	if _, ok := Lookup(""); ok {
		t.Error("Lookup(\"\") unexpectedly found")
	}
}

func TestGroupsPreserveOrder(t *testing.T) {
	groups := Groups()
	if len(groups) == 0 {
		t.Fatal("no groups")
	}
	if groups[0].Name != "General" {
		t.Errorf("first group = %q, want General", groups[0].Name)
	}

	// Every registry entry appears in exactly one group, in
	// declaration order.
	var flat []Shortcut
	for _, g := range groups {
		for _, sc := range g.Shortcuts {
			if sc.Category != g.Name {
				t.Errorf("shortcut %q grouped under %q, category %q", sc.Keys, g.Name, sc.Category)
			}
		}
		flat = append(flat, g.Shortcuts...)
	}
	if len(flat) != len(All()) {
		t.Errorf("groups contain %d shortcuts, registry has %d", len(flat), len(All()))
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Keys = "mutated"
	if All()[0].Keys == "mutated" {
		t.Error("All() exposes the internal table")
	}
}
