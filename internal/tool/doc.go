// Package tool implements the interactive polygon/polyline draw and edit
// controllers.
//
// Both controllers consume screen-space pointer events and key events,
// mutate a shapes.Store through stable row references and keep a
// shapes.Overlay of vertex handles in sync with it. Per-frame updates
// (Move, Pan) emit preview changes only; Press, Tap, PanEnd and the
// key handlers are the commit points that emit persisted changes.
//
// Every exported handler runs to completion and never fails: a pointer
// outside the frame, an unconfigured axis or a stale reference turns the
// operation into a logged no-op.
package tool
