// Package status drives the small monochrome display that shows the current
// effect and color.
package status

import "errors"

// ErrNoDisplay is returned when the display does not answer at startup.
var ErrNoDisplay = errors.New("status: display not detected")

// Line positions on a 128x32 panel.
var LineY = [3]int{0, 12, 24}

// Display is a text-oriented monochrome screen. Drawing is buffered until
// Flush.
type Display interface {
	Clear()
	DrawText(s string, x, y int)
	Flush() error
	PowerOff() error
	PowerOn() error
}
