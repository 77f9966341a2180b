//go:build darwin

package keys

// The primary modifier is Command on Apple platforms; combos are
// displayed with macOS modifier glyphs and no separator.
const (
	primaryIsMeta = true

	modLabel   = "⌘"
	shiftLabel = "⇧"
	altLabel   = "⌥"
	labelSep   = ""
)
