package hook

import (
	"testing"

	"keygrab/keys"
)

func TestModifierSequencing(t *testing.T) {
	var tr ModifierTracker

	tr.Update(keys.VKLControl, true)
	tr.Update(keys.VKLShift, true)
	tr.Update(keys.VKLControl, false)
	if got := tr.Mask(); got != keys.Shift {
		t.Errorf("Mask = %v, want Shift only", got)
	}

	tr.Update(keys.VKLShift, false)
	if got := tr.Mask(); got != keys.None {
		t.Errorf("Mask after all released = %v", got)
	}
}

func TestModifierVariantsShareClass(t *testing.T) {
	var tr ModifierTracker

	// Left down, right up: the class is keyed by the last event, not by side.
	tr.Update(keys.VKLControl, true)
	tr.Update(keys.VKRControl, false)
	if got := tr.Mask(); got != keys.None {
		t.Errorf("Mask = %v, left/right variants should share one flag", got)
	}

	tr.Update(keys.VKRWin, true)
	tr.Update(keys.VKMenu, true)
	if got := tr.Mask(); got != keys.Win|keys.Alt {
		t.Errorf("Mask = %v, want Win|Alt", got)
	}
}

func TestModifierIgnoresNonModifiers(t *testing.T) {
	var tr ModifierTracker
	tr.Update('A', true)
	tr.Update(keys.VKF1, true)
	tr.Update(keys.VKSpace, false)
	if got := tr.Mask(); got != keys.None {
		t.Errorf("Mask = %v after non-modifier events", got)
	}
}

func TestModifierReset(t *testing.T) {
	var tr ModifierTracker
	tr.Update(keys.VKLWin, true)
	tr.Update(keys.VKLShift, true)
	tr.Reset()
	if got := tr.Mask(); got != keys.None {
		t.Errorf("Mask after Reset = %v", got)
	}
}
