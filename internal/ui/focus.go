package ui

import "slices"

// FocusManager tracks and rotates focus across named fields.
type FocusManager struct {
	Current  string   // ID of the focused field
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// NewFocusManager focuses the first ID in order.
func NewFocusManager(order []string, onChange func(from, to string)) *FocusManager {
	f := &FocusManager{Order: order, OnChange: onChange}
	if len(order) > 0 {
		f.SetFocus(order[0])
	}
	return f
}

// Index returns the position of the focused ID in Order, or -1.
func (f *FocusManager) Index() int {
	return slices.Index(f.Order, f.Current)
}

// IsLast reports whether focus is on the last ID in Order.
func (f *FocusManager) IsLast() bool {
	return len(f.Order) > 0 && f.Index() == len(f.Order)-1
}

// Next advances focus, wrapping at the end. Returns the new focus ID.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus back, wrapping at the start.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := f.Index()
	if idx < 0 && delta < 0 {
		idx = 0
	}
	f.move(f.Order[((idx+delta)%n+n)%n])
	return f.Current
}

// SetFocus focuses id. Returns false if id is not in Order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.move(id)
	return true
}

func (f *FocusManager) move(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
