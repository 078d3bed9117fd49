package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"geoedit/internal/tool"
)

type gestureKind int

const (
	gesturePress gestureKind = iota
	gestureTap
	gestureMove
	gesturePanStart
	gesturePan
	gesturePanEnd
)

func (k gestureKind) String() string {
	return [...]string{"press", "tap", "move", "pan_start", "pan", "pan_end"}[k]
}

// gesture is a recognised pointer event in terminal cell coordinates.
type gesture struct {
	kind gestureKind
	x, y int
	mods tool.Modifiers
}

// gestures turns raw mouse messages into press/tap/move/pan events.
// A left click without movement is a tap, a left drag is a pan and a
// right click is a press. Wheel events are left to the caller.
type gestures struct {
	// deadZone is the distance in cells a held button must travel
	// before a pan starts.
	deadZone int

	down    bool
	button  tea.MouseButton
	startX  int
	startY  int
	lastX   int
	lastY   int
	panning bool
}

func modifiers(msg tea.MouseMsg) tool.Modifiers {
	return tool.Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl, Alt: msg.Alt}
}

func (g *gestures) feed(msg tea.MouseMsg) []gesture {
	mods := modifiers(msg)
	at := func(k gestureKind, x, y int) gesture { return gesture{kind: k, x: x, y: y, mods: mods} }

	switch msg.Action {
	case tea.MouseActionPress:
		if tea.MouseEvent(msg).IsWheel() || g.down {
			return nil
		}
		g.down = true
		g.button = msg.Button
		g.startX, g.startY = msg.X, msg.Y
		g.lastX, g.lastY = msg.X, msg.Y
		g.panning = false
		if msg.Button == tea.MouseButtonRight {
			return []gesture{at(gesturePress, msg.X, msg.Y)}
		}
		return nil

	case tea.MouseActionRelease:
		if !g.down {
			return nil
		}
		// some terminals report the release without a button
		g.down = false
		if g.button != tea.MouseButtonLeft {
			return nil
		}
		if g.panning {
			g.panning = false
			return []gesture{at(gesturePanEnd, msg.X, msg.Y)}
		}
		return []gesture{at(gestureTap, msg.X, msg.Y)}

	case tea.MouseActionMotion:
		if !g.down || g.button != tea.MouseButtonLeft {
			if msg.X == g.lastX && msg.Y == g.lastY {
				return nil
			}
			g.lastX, g.lastY = msg.X, msg.Y
			return []gesture{at(gestureMove, msg.X, msg.Y)}
		}
		if msg.X == g.lastX && msg.Y == g.lastY {
			return nil
		}
		g.lastX, g.lastY = msg.X, msg.Y
		if g.panning {
			return []gesture{at(gesturePan, msg.X, msg.Y)}
		}
		dx, dy := msg.X-g.startX, msg.Y-g.startY
		if dx*dx+dy*dy <= g.deadZone*g.deadZone {
			return nil
		}
		g.panning = true
		return []gesture{at(gesturePanStart, g.startX, g.startY), at(gesturePan, msg.X, msg.Y)}
	}
	return nil
}

// cancel forgets a gesture in progress, e.g. when the tool changes.
func (g *gestures) cancel() {
	g.down = false
	g.panning = false
}
