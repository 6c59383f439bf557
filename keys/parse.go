package keys

import (
	"fmt"
	"strings"
)

// Key names accepted by Parse beyond single characters. Lowercase keys;
// aliases included where common usage differs from the display name.
var parseNames = map[string]uint32{
	"backspace":   VKBack,
	"tab":         VKTab,
	"enter":       VKReturn,
	"return":      VKReturn,
	"pause":       VKPause,
	"capslock":    VKCapital,
	"esc":         VKEscape,
	"escape":      VKEscape,
	"space":       VKSpace,
	"pageup":      VKPrior,
	"pagedown":    VKNext,
	"end":         VKEnd,
	"home":        VKHome,
	"left":        VKLeft,
	"up":          VKUp,
	"right":       VKRight,
	"down":        VKDown,
	"printscreen": VKSnapshot,
	"insert":      VKInsert,
	"delete":      VKDelete,
	"del":         VKDelete,
	"numlock":     VKNumLock,
	"scrolllock":  VKScrollLock,
}

// Parse converts a textual combination like "ctrl+shift+f1" or "Win+C"
// into a (vk, mask) pair. Matching is case-insensitive; "super" and "cmd"
// are aliases for the Win modifier. The last segment must be the key.
func Parse(s string) (vk uint32, m Mask, err error) {
	parts := strings.Split(s, "+")
	if len(parts) == 0 || strings.TrimSpace(s) == "" {
		return 0, None, fmt.Errorf("empty hotkey %q", s)
	}
	for i, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		last := i == len(parts)-1
		switch p {
		case "win", "super", "cmd":
			m |= Win
			continue
		case "ctrl", "control":
			m |= Ctrl
			continue
		case "shift":
			m |= Shift
			continue
		case "alt":
			m |= Alt
			continue
		}
		if !last {
			return 0, None, fmt.Errorf("unknown modifier %q in %q", p, s)
		}
		vk, err = parseKey(p)
		if err != nil {
			return 0, None, fmt.Errorf("parsing %q: %w", s, err)
		}
	}
	if vk == 0 {
		return 0, None, fmt.Errorf("hotkey %q has no key", s)
	}
	return vk, m, nil
}

func parseKey(p string) (uint32, error) {
	if len(p) == 1 {
		c := p[0]
		if c >= 'a' && c <= 'z' {
			return uint32(c - 'a' + 'A'), nil
		}
		if c >= '0' && c <= '9' {
			return uint32(c), nil
		}
	}
	if vk, ok := parseNames[p]; ok {
		return vk, nil
	}
	if strings.HasPrefix(p, "f") {
		var n int
		if _, err := fmt.Sscanf(p, "f%d", &n); err == nil && n >= 1 && n <= 24 {
			return uint32(VKF1 + n - 1), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", p)
}
