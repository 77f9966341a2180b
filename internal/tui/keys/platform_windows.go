//go:build windows

package keys

const (
	primaryIsMeta = false

	modLabel   = "Ctrl"
	shiftLabel = "Shift"
	altLabel   = "Alt"
	labelSep   = "+"
)
