package keys

import "testing"

func TestCombineSplitRoundTrip(t *testing.T) {
	cases := []struct {
		vk uint32
		m  Mask
	}{
		{VKF1, Win},
		{'A', None},
		{'Z', Win | Ctrl | Shift | Alt},
		{VKSpace, Ctrl | Shift},
		{0xFFFFFFFF, Alt},
		{0, None},
	}
	for _, c := range cases {
		id := Combine(c.vk, c.m)
		vk, m := id.Split()
		if vk != c.vk || m != c.m {
			t.Errorf("Combine(%#x, %#x) round trip = (%#x, %#x)", c.vk, c.m, vk, m)
		}
	}
}

func TestCombineEncoding(t *testing.T) {
	// mask in the high 32 bits, vk in the low 32
	id := Combine(VKF1, Win|Ctrl)
	if uint64(id) != 0x3<<32|uint64(VKF1) {
		t.Errorf("Combine(F1, Win|Ctrl) = %#x", uint64(id))
	}
	if Combine('A', None) != ID('A') {
		t.Errorf("Combine(A, None) = %#x", uint64(Combine('A', None)))
	}
}

func TestIsModifier(t *testing.T) {
	mods := []uint32{
		VKLWin, VKRWin,
		VKLControl, VKRControl, VKControl,
		VKLShift, VKRShift, VKShift,
		VKLMenu, VKRMenu, VKMenu,
	}
	for _, vk := range mods {
		if !IsModifier(vk) {
			t.Errorf("IsModifier(%#x) = false", vk)
		}
	}
	for _, vk := range []uint32{'A', VKF1, VKSpace, VKEscape, VKCapital} {
		if IsModifier(vk) {
			t.Errorf("IsModifier(%#x) = true", vk)
		}
	}
}

func TestModifierClass(t *testing.T) {
	cases := map[uint32]Mask{
		VKLWin:     Win,
		VKRWin:     Win,
		VKLControl: Ctrl,
		VKControl:  Ctrl,
		VKRShift:   Shift,
		VKShift:    Shift,
		VKLMenu:    Alt,
		VKMenu:     Alt,
		'A':        None,
		VKF1:       None,
	}
	for vk, want := range cases {
		if got := ModifierClass(vk); got != want {
			t.Errorf("ModifierClass(%#x) = %#x, want %#x", vk, got, want)
		}
	}
}

func TestMaskHas(t *testing.T) {
	m := Win | Shift
	if !m.Has(Win) || !m.Has(Shift) || !m.Has(Win|Shift) {
		t.Error("Has should report contained bits")
	}
	if m.Has(Ctrl) || m.Has(Win|Ctrl) {
		t.Error("Has should reject missing bits")
	}
}
