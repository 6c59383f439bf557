//go:build linux

package hook

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"keygrab/keys"
)

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

const inputEventSize = 24

// linuxTap reads raw key events from every evdev keyboard device and
// translates linux keycodes to Windows virtual key codes before delivery.
// Per-device readers feed a single delivery goroutine, so emit is never
// called from two goroutines at once even with several keyboards attached.
type linuxTap struct {
	mu    sync.Mutex
	files []*os.File
	stop  chan struct{}
	once  *sync.Once
}

type rawEvent struct {
	vk      uint32
	keyDown bool
}

func NewTap() Tap { return &linuxTap{} }

func (t *linuxTap) Install(emit func(vk uint32, keyDown bool)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	t.stop = make(chan struct{})
	t.once = &sync.Once{}
	events := make(chan rawEvent, 64)

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		t.files = append(t.files, f)
		go readEvents(f, t.stop, events)
	}

	if len(t.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	go deliver(events, t.stop, emit)
	return nil
}

// deliver forwards events from every device reader on one goroutine.
func deliver(events <-chan rawEvent, stop <-chan struct{}, emit func(vk uint32, keyDown bool)) {
	for {
		select {
		case <-stop:
			return
		case ev := <-events:
			emit(ev.vk, ev.keyDown)
		}
	}
}

func (t *linuxTap) Uninstall() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.once == nil {
		return nil
	}
	t.once.Do(func() {
		close(t.stop)
		for _, f := range t.files {
			f.Close()
		}
		t.files = nil
	})
	return nil
}

func readEvents(f *os.File, stop <-chan struct{}, events chan<- rawEvent) {
	buf := make([]byte, inputEventSize*16)
	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey || evValue == keyRepeat {
				continue
			}
			vk, ok := linuxToVK[evCode]
			if !ok {
				continue
			}
			select {
			case events <- rawEvent{vk: vk, keyDown: evValue == keyPress}:
			case <-stop:
				return
			}
		}
	}
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(data))) > 10
}

// DiagnoseTap reports whether evdev keyboards are accessible.
func DiagnoseTap() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}
	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}

// linux input keycodes mapped to Windows virtual key codes, covering the
// keys the engine can name. Unmapped codes are dropped before dispatch.
var linuxToVK = map[uint16]uint32{
	1: keys.VKEscape,
	2: '1', 3: '2', 4: '3', 5: '4', 6: '5',
	7: '6', 8: '7', 9: '8', 10: '9', 11: '0',
	14: keys.VKBack,
	15: keys.VKTab,
	16: 'Q', 17: 'W', 18: 'E', 19: 'R', 20: 'T',
	21: 'Y', 22: 'U', 23: 'I', 24: 'O', 25: 'P',
	28: keys.VKReturn,
	29: keys.VKLControl,
	30: 'A', 31: 'S', 32: 'D', 33: 'F', 34: 'G',
	35: 'H', 36: 'J', 37: 'K', 38: 'L',
	42: keys.VKLShift,
	44: 'Z', 45: 'X', 46: 'C', 47: 'V', 48: 'B',
	49: 'N', 50: 'M',
	54: keys.VKRShift,
	56: keys.VKLMenu,
	57: keys.VKSpace,
	58: keys.VKCapital,
	59: keys.VKF1, 60: keys.VKF2, 61: keys.VKF3, 62: keys.VKF4,
	63: keys.VKF5, 64: keys.VKF6, 65: keys.VKF7, 66: keys.VKF8,
	67: keys.VKF9, 68: keys.VKF10,
	69: keys.VKNumLock,
	70: keys.VKScrollLock,
	87: keys.VKF11, 88: keys.VKF12,
	97:  keys.VKRControl,
	100: keys.VKRMenu,
	102: keys.VKHome,
	103: keys.VKUp,
	104: keys.VKPrior,
	105: keys.VKLeft,
	106: keys.VKRight,
	107: keys.VKEnd,
	108: keys.VKDown,
	109: keys.VKNext,
	110: keys.VKInsert,
	111: keys.VKDelete,
	125: keys.VKLWin,
	126: keys.VKRWin,
}
