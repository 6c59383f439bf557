// Command keygrab is a small hosting shell for the hotkey engine: it binds
// combinations given on the command line, prints and logs every dispatch,
// and keeps the thread-with-message-loop contract the hook requires.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/atotto/clipboard"

	"keygrab"
	"keygrab/doctor"
	"keygrab/keys"
	"keygrab/log"
	"keygrab/shutdown"
)

type bindList []string

func (b *bindList) String() string { return strings.Join(*b, ",") }

func (b *bindList) Set(v string) error {
	*b = append(*b, v)
	return nil
}

var lastMu sync.Mutex
var lastLabel string

func main() {
	var binds bindList
	doctorMode := flag.Bool("doctor", false, "run environment diagnostics and exit")
	logPath := flag.String("logpath", "", "directory for diagnostic logs")
	copyCombo := flag.String("copy", "ctrl+shift+c", "combo that copies the last fired hotkey label to the clipboard (empty disables)")
	flag.Var(&binds, "bind", "binding as combo=description, repeatable (e.g. -bind win+f1=help)")
	flag.Parse()

	if *doctorMode {
		os.Exit(doctor.Run())
	}

	dir, err := log.ResolveDir(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot resolve log directory: %v\n", err)
	} else {
		log.SetDir(dir)
		if err := log.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
		}
	}
	defer log.Close()

	if len(binds) == 0 {
		binds = bindList{"ctrl+shift+f10=keygrab demo"}
	}

	// The hook is installed from this thread and, on Windows, events are
	// only delivered while this same thread pumps messages.
	runtime.LockOSThread()

	mgr := keygrab.New(keygrab.WithLogger(log.Logger()))
	if err := mgr.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Stop()

	var dispatches atomic.Int64
	for _, b := range binds {
		if err := registerBind(mgr, b, &dispatches); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *copyCombo != "" {
		if err := registerCopy(mgr, *copyCombo); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	for _, b := range mgr.RegisteredHotkeys() {
		fmt.Printf("bound %-20s %s\n", keys.Format(b.Mods, b.VK), b.Description)
	}
	fmt.Println("keygrab running; Ctrl+C to quit")
	log.SessionStart(mgr.Count())

	sig := make(chan os.Signal, 1)
	shutdown.Notify(sig)
	runLoop(sig)

	log.SessionEnd(int(dispatches.Load()))
}

func registerBind(mgr *keygrab.Manager, bind string, dispatches *atomic.Int64) error {
	combo, desc, ok := strings.Cut(bind, "=")
	if !ok {
		desc = combo
	}
	vk, mods, err := keys.Parse(combo)
	if err != nil {
		return err
	}
	label := keys.Format(mods, vk)
	action := func() {
		dispatches.Add(1)
		lastMu.Lock()
		lastLabel = label
		lastMu.Unlock()
		fmt.Printf("%-20s %s\n", label, desc)
		log.Dispatch(mods, vk, desc)
	}
	if err := mgr.RegisterHotkey(vk, mods, action, desc); err != nil {
		return fmt.Errorf("binding %s: %w", label, err)
	}
	return nil
}

func registerCopy(mgr *keygrab.Manager, combo string) error {
	vk, mods, err := keys.Parse(combo)
	if err != nil {
		return err
	}
	action := func() {
		lastMu.Lock()
		label := lastLabel
		lastMu.Unlock()
		if label == "" {
			return
		}
		if err := clipboard.WriteAll(label); err != nil {
			log.Errorf("clipboard write: %v", err)
		}
	}
	if err := mgr.RegisterHotkey(vk, mods, action, "copy last hotkey to clipboard"); err != nil {
		return fmt.Errorf("binding %s: %w", keys.Format(mods, vk), err)
	}
	return nil
}
