package keys

import (
	"strings"
	"testing"
)

func TestNormalizeTokenOrder(t *testing.T) {
	ev := Event{Name: "D", Shift: true, Alt: true}
	if primaryIsMeta {
		ev.Meta = true
	} else {
		ev.Ctrl = true
	}
	got := Normalize(ev)
	if got != "mod+shift+alt+d" {
		t.Errorf("Normalize() = %q, want mod+shift+alt+d", got)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	// Every modifier-flag combination over a fixed base key must
	// normalize to the same string every time.
	for mask := 0; mask < 16; mask++ {
		ev := Event{
			Name:  "k",
			Ctrl:  mask&1 != 0,
			Meta:  mask&2 != 0,
			Shift: mask&4 != 0,
			Alt:   mask&8 != 0,
		}
		first := Normalize(ev)
		second := Normalize(ev)
		if first != second {
			t.Fatalf("Normalize not deterministic for %+v: %q then %q", ev, first, second)
		}
		if !strings.HasSuffix(first, "k") {
			t.Errorf("Normalize(%+v) = %q, want base key suffix", ev, first)
		}
	}
}

func TestNormalizePrimaryModifierOnce(t *testing.T) {
	// Both physical primary candidates held still yields a single mod
	// token.
	got := Normalize(Event{Name: "a", Ctrl: true, Meta: true})
	if got != "mod+a" {
		t.Errorf("Normalize(ctrl+meta+a) = %q, want mod+a", got)
	}
}

func TestNormalizeBareKeys(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Name: "space"}, "space"},
		{Event{Name: "escape"}, "escape"},
		{Event{Name: "delete"}, "delete"},
		{Event{Name: "?"}, "?"},
		{Event{Name: "Q"}, "q"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.ev); got != tt.want {
			t.Errorf("Normalize(%+v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func TestNormalizeBareModifierHasNoBaseKey(t *testing.T) {
	// A bare modifier press must not produce a base-key token, so the
	// result can never match a registry entry.
	for _, name := range []string{"ctrl", "meta", "shift", "alt", "control", "cmd", "option", ""} {
		ev := Event{Name: name, Shift: true}
		got := Normalize(ev)
		if got != "shift" {
			t.Errorf("Normalize(bare %q) = %q, want shift", name, got)
		}
		if _, ok := Lookup(got); ok {
			t.Errorf("bare modifier combo %q unexpectedly matches the registry", got)
		}
	}
}

func TestNormalizeMatchesRegistryGrammar(t *testing.T) {
	// Registry self-consistency: every entry's combo must round-trip
	// through the normalizer's token order.
	order := map[string]int{"mod": 0, "shift": 1, "alt": 2}
	for _, sc := range All() {
		parts := strings.Split(sc.Keys, "+")
		base := parts[len(parts)-1]
		if base == "" || base != strings.ToLower(base) {
			t.Errorf("registry combo %q: base key must be non-empty lowercase", sc.Keys)
		}
		last := -1
		for _, p := range parts[:len(parts)-1] {
			rank, ok := order[p]
			if !ok {
				t.Errorf("registry combo %q: unknown modifier token %q", sc.Keys, p)
				continue
			}
			if rank <= last {
				t.Errorf("registry combo %q: modifier tokens out of canonical order", sc.Keys)
			}
			last = rank
		}
	}
}
