// Package ui implements the seodesk terminal dashboard.
//
// The UI is a single Bubble Tea model. Sections behave like browser tabs,
// overlay panels open within a section, and the two submission wizards walk
// a strict form -> details -> modal -> done sequence owned by the navigator.
// Data arrives as immutable snapshots from the state store; the UI never
// talks to the pollers directly.
package ui
