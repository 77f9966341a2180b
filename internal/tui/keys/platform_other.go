//go:build !darwin && !windows

package keys

const (
	primaryIsMeta = false

	modLabel   = "Ctrl"
	shiftLabel = "Shift"
	altLabel   = "Alt"
	labelSep   = "+"
)
