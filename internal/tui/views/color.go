package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

func colorTag(c tcell.Color) string {
	return fmt.Sprintf("#%06x", c.Hex())
}
