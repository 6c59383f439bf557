package keys

import (
	"fmt"
	"strings"
)

// Display names for keys without a printable character.
var keyNames = map[uint32]string{
	VKBack:       "Backspace",
	VKTab:        "Tab",
	VKReturn:     "Enter",
	VKPause:      "Pause",
	VKCapital:    "Caps Lock",
	VKEscape:     "Esc",
	VKSpace:      "Space",
	VKPrior:      "Page Up",
	VKNext:       "Page Down",
	VKEnd:        "End",
	VKHome:       "Home",
	VKLeft:       "Left",
	VKUp:         "Up",
	VKRight:      "Right",
	VKDown:       "Down",
	VKSnapshot:   "Print Screen",
	VKInsert:     "Insert",
	VKDelete:     "Delete",
	VKMultiply:   "Numpad *",
	VKAdd:        "Numpad +",
	VKSubtract:   "Numpad -",
	VKDecimal:    "Numpad .",
	VKDivide:     "Numpad /",
	VKNumLock:    "Num Lock",
	VKScrollLock: "Scroll Lock",
}

// String returns the modifier names joined with '+', e.g. "Win+Ctrl".
// Returns "" for None.
func (m Mask) String() string {
	var parts []string
	if m.Has(Win) {
		parts = append(parts, "Win")
	}
	if m.Has(Ctrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(Shift) {
		parts = append(parts, "Shift")
	}
	if m.Has(Alt) {
		parts = append(parts, "Alt")
	}
	return strings.Join(parts, "+")
}

// KeyName returns a display name for a virtual key code, e.g. "A", "F1",
// "Enter". Unknown codes come back as "VK_0x2C" style.
func KeyName(vk uint32) string {
	if name, ok := keyNames[vk]; ok {
		return name
	}
	if (vk >= 'A' && vk <= 'Z') || (vk >= '0' && vk <= '9') {
		return string(rune(vk))
	}
	if vk >= VKNumpad0 && vk <= VKNumpad9 {
		return fmt.Sprintf("Numpad %d", vk-VKNumpad0)
	}
	if vk >= VKF1 && vk <= VKF24 {
		return fmt.Sprintf("F%d", vk-VKF1+1)
	}
	return fmt.Sprintf("VK_0x%02X", vk)
}

// Format renders a full combination label, e.g. "Win+Ctrl+A".
func Format(m Mask, vk uint32) string {
	mods := m.String()
	if mods == "" {
		return KeyName(vk)
	}
	return mods + "+" + KeyName(vk)
}
