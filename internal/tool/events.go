package tool

import "geoedit/internal/shapes"

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// PointEvent is a pointer event in screen coordinates.
type PointEvent struct {
	SX, SY float64
	Mods   Modifiers
}

type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyBackspace
)

type KeyEvent struct {
	Key Key
}

// SelectionModeFor maps modifiers to a selection mode: shift appends,
// ctrl toggles, anything else replaces.
func SelectionModeFor(m Modifiers) shapes.Mode {
	switch {
	case m.Shift:
		return shapes.Append
	case m.Ctrl:
		return shapes.Xor
	default:
		return shapes.Replace
	}
}

// Tool is the event surface shared by DrawTool and EditTool.
type Tool interface {
	Name() string
	Active() bool
	Activate()
	Deactivate()
	Press(ev PointEvent)
	Tap(ev PointEvent)
	Move(ev PointEvent)
	PanStart(ev PointEvent)
	Pan(ev PointEvent)
	PanEnd(ev PointEvent)
	KeyUp(ev KeyEvent)
}
