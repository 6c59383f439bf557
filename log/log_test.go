package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keygrab/keys"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir("") })
	return tmp
}

func TestResolveDirFlag(t *testing.T) {
	got, err := ResolveDir("/tmp/mylog")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/mylog" {
		t.Errorf("got %q, want /tmp/mylog", got)
	}
}

func TestResolveDirFlagRelative(t *testing.T) {
	got, err := ResolveDir("logs")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("KEYGRAB_LOG_PATH", "/tmp/keygrab-env-log")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/keygrab-env-log" {
		t.Errorf("got %q, want /tmp/keygrab-env-log", got)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("KEYGRAB_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Error("expected non-empty default directory")
	}
}

func TestInitCreatesFile(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(tmp, "diagnostics_log.txt")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("diagnostics_log.txt not created: %v", err)
	}
}

func TestDispatchLine(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}

	Dispatch(keys.Win|keys.Ctrl, 'A', "select all windows")
	Close()

	data, err := os.ReadFile(filepath.Join(tmp, "diagnostics_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, "Win+Ctrl+A") {
		t.Errorf("diagnostics_log.txt missing combo label, got: %q", line)
	}
	if !strings.Contains(line, "hotkey_dispatch") {
		t.Errorf("diagnostics_log.txt missing event name, got: %q", line)
	}
}

func TestCloseIdempotent(t *testing.T) {
	setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Close()
	Close() // should not panic
}
