// Package keys defines virtual key codes, modifier masks and the canonical
// hotkey identity encoding shared by the hook, registry and manager layers.
package keys

// Mask is a bitset of held modifier classes.
type Mask uint32

const (
	None  Mask = 0x0000
	Win   Mask = 0x0001
	Ctrl  Mask = 0x0002
	Shift Mask = 0x0004
	Alt   Mask = 0x0008
)

// Has reports whether every bit of m2 is set in m.
func (m Mask) Has(m2 Mask) bool { return m&m2 == m2 }

// ID is the canonical identity of a hotkey combination:
// the modifier mask in the high 32 bits, the virtual key code in the low 32.
type ID uint64

// Combine builds the identity for a (vk, mask) pair.
func Combine(vk uint32, m Mask) ID {
	return ID(uint64(m)<<32 | uint64(vk))
}

// Split recovers the (vk, mask) pair from an identity.
func (id ID) Split() (vk uint32, m Mask) {
	return uint32(id), Mask(id >> 32)
}

// Windows virtual key codes. Letters and digits map to their ASCII
// uppercase values and are not listed.
const (
	VKBack     = 0x08
	VKTab      = 0x09
	VKReturn   = 0x0D
	VKShift    = 0x10
	VKControl  = 0x11
	VKMenu     = 0x12 // Alt
	VKPause    = 0x13
	VKCapital  = 0x14
	VKEscape   = 0x1B
	VKSpace    = 0x20
	VKPrior    = 0x21 // Page Up
	VKNext     = 0x22 // Page Down
	VKEnd      = 0x23
	VKHome     = 0x24
	VKLeft     = 0x25
	VKUp       = 0x26
	VKRight    = 0x27
	VKDown     = 0x28
	VKSnapshot = 0x2C
	VKInsert   = 0x2D
	VKDelete   = 0x2E

	VKNumpad0  = 0x60
	VKNumpad9  = 0x69
	VKMultiply = 0x6A
	VKAdd      = 0x6B
	VKSubtract = 0x6D
	VKDecimal  = 0x6E
	VKDivide   = 0x6F

	VKF1  = 0x70
	VKF2  = 0x71
	VKF3  = 0x72
	VKF4  = 0x73
	VKF5  = 0x74
	VKF6  = 0x75
	VKF7  = 0x76
	VKF8  = 0x77
	VKF9  = 0x78
	VKF10 = 0x79
	VKF11 = 0x7A
	VKF12 = 0x7B
	VKF13 = 0x7C
	VKF14 = 0x7D
	VKF15 = 0x7E
	VKF16 = 0x7F
	VKF17 = 0x80
	VKF18 = 0x81
	VKF19 = 0x82
	VKF20 = 0x83
	VKF21 = 0x84
	VKF22 = 0x85
	VKF23 = 0x86
	VKF24 = 0x87

	VKNumLock    = 0x90
	VKScrollLock = 0x91

	VKLShift   = 0xA0
	VKRShift   = 0xA1
	VKLControl = 0xA2
	VKRControl = 0xA3
	VKLMenu    = 0xA4
	VKRMenu    = 0xA5
	VKLWin     = 0x5B
	VKRWin     = 0x5C
)

// IsModifier reports whether vk is one of the recognized modifier variants:
// left/right Win, left/right/generic Ctrl, Shift and Alt.
func IsModifier(vk uint32) bool {
	switch vk {
	case VKLWin, VKRWin,
		VKLControl, VKRControl, VKControl,
		VKLShift, VKRShift, VKShift,
		VKLMenu, VKRMenu, VKMenu:
		return true
	}
	return false
}

// ModifierClass returns the Mask bit for a modifier key, or None for
// anything that is not a modifier.
func ModifierClass(vk uint32) Mask {
	switch vk {
	case VKLWin, VKRWin:
		return Win
	case VKLControl, VKRControl, VKControl:
		return Ctrl
	case VKLShift, VKRShift, VKShift:
		return Shift
	case VKLMenu, VKRMenu, VKMenu:
		return Alt
	}
	return None
}
