package keys

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		vk   uint32
		mask Mask
	}{
		{"ctrl+shift+f1", VKF1, Ctrl | Shift},
		{"Win+C", 'C', Win},
		{"super+space", VKSpace, Win},
		{"cmd+alt+escape", VKEscape, Win | Alt},
		{"a", 'A', None},
		{"7", '7', None},
		{"CTRL+ALT+Delete", VKDelete, Ctrl | Alt},
		{"f12", VKF12, None},
		{"win+ctrl+shift+alt+z", 'Z', Win | Ctrl | Shift | Alt},
	}
	for _, c := range cases {
		vk, m, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", c.in, err)
			continue
		}
		if vk != c.vk || m != c.mask {
			t.Errorf("Parse(%q) = (%#x, %#x), want (%#x, %#x)", c.in, vk, m, c.vk, c.mask)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "ctrl+", "bogus+a", "ctrl+bogus", "ctrl"} {
		if _, _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, label := range []string{"Win+Ctrl+A", "Shift+F5", "Alt+Space", "Win+Delete"} {
		vk, m, err := Parse(label)
		if err != nil {
			t.Fatalf("Parse(%q): %v", label, err)
		}
		if got := Format(m, vk); got != label {
			t.Errorf("Format(Parse(%q)) = %q", label, got)
		}
	}
}
