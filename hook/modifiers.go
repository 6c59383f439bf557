package hook

import "keygrab/keys"

// ModifierTracker keeps the net held state of the four modifier classes,
// derived from the raw key event stream. Left and right variants of the
// same class are not distinguished.
//
// It is not safe for concurrent use; the hook guards it with its own
// lock during dispatch, install and uninstall.
type ModifierTracker struct {
	win, ctrl, shift, alt bool
}

// Update applies a raw key event. Non-modifier keys are ignored.
func (t *ModifierTracker) Update(vk uint32, keyDown bool) {
	switch keys.ModifierClass(vk) {
	case keys.Win:
		t.win = keyDown
	case keys.Ctrl:
		t.ctrl = keyDown
	case keys.Shift:
		t.shift = keyDown
	case keys.Alt:
		t.alt = keyDown
	}
}

// Mask returns the mask of currently held modifier classes.
func (t *ModifierTracker) Mask() keys.Mask {
	m := keys.None
	if t.win {
		m |= keys.Win
	}
	if t.ctrl {
		m |= keys.Ctrl
	}
	if t.shift {
		m |= keys.Shift
	}
	if t.alt {
		m |= keys.Alt
	}
	return m
}

// Reset clears all four flags. Used whenever the interception resource is
// installed or released, since real key state is unknown across that gap.
func (t *ModifierTracker) Reset() {
	t.win, t.ctrl, t.shift, t.alt = false, false, false, false
}
