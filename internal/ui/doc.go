// Package ui is the terminal front end of the F1 admin dashboard, built on
// Bubble Tea.
//
// Core abstractions:
//   - View: a screen with its own model, update and view (Elm-style)
//   - AppModel: switches between the dashboard, resource list and create modes
//   - KeyHandler: SPC-leader key sequences dispatched through a KeybindRegistry
//   - OverlayStack: modal views (delete confirmation) that take input first
//   - FocusManager: rotates focus across the inputs of a create form
package ui
