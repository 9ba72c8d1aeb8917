package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/keyline/internal/histfile"
)

func newTestApp(t *testing.T, input string, opts Options) (*Application, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts.Input = strings.NewReader(input)
	opts.Output = &out
	opts.LogLevel = "error"

	app, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(app.Shutdown)
	return app, &out
}

func TestRunEchoesLines(t *testing.T) {
	app, out := newTestApp(t, "hello\nexit\n", Options{})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("output = %q, want echoed line", out.String())
	}
}

func TestRunInvokesHandler(t *testing.T) {
	var lines []string
	app, _ := newTestApp(t, "one\ntwo\n", Options{
		Handle: func(line string) error {
			lines = append(lines, line)
			return nil
		},
	})

	// End of stream is a normal quit.
	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("handled lines = %v", lines)
	}
}

func TestRunQuitCommandSkipsHandler(t *testing.T) {
	var handled []string
	app, _ := newTestApp(t, "quit\n", Options{
		Handle: func(line string) error {
			handled = append(handled, line)
			return nil
		},
	})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}
	if len(handled) != 0 {
		t.Errorf("quit command reached the handler: %v", handled)
	}
}

func TestRunInterruptContinues(t *testing.T) {
	var lines []string
	app, _ := newTestApp(t, "abandoned\x03ok\nexit\n", Options{
		Handle: func(line string) error {
			lines = append(lines, line)
			return nil
		},
	})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}
	if len(lines) != 1 || lines[0] != "ok" {
		t.Errorf("handled lines = %v, want only the post-interrupt line", lines)
	}
}

func TestRunHandlerErrorStops(t *testing.T) {
	boom := errors.New("boom")
	app, _ := newTestApp(t, "x\ny\n", Options{
		Handle: func(string) error { return boom },
	})

	if err := app.Run(); !errors.Is(err, boom) {
		t.Errorf("Run = %v, want handler error", err)
	}
}

func TestRunAlreadyRunning(t *testing.T) {
	app, _ := newTestApp(t, "exit\n", Options{})
	app.running.Store(true)

	if err := app.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Run = %v, want ErrAlreadyRunning", err)
	}
}

func TestHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	app, _ := newTestApp(t, "one\ntwo\nexit\n", Options{HistoryFile: path})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatal(err)
	}
	app.Shutdown()

	entries, err := histfile.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) < 2 || entries[0].Line != "one" || entries[1].Line != "two" {
		t.Errorf("persisted entries = %v", entries)
	}
}

func TestHistoryPreload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	if err := histfile.Append(path, "previous command", time.Now()); err != nil {
		t.Fatal(err)
	}

	// ArrowUp recalls the preloaded entry; Enter resubmits it.
	var lines []string
	app, _ := newTestApp(t, "\x1b[A\nexit\n", Options{
		HistoryFile: path,
		Handle: func(line string) error {
			lines = append(lines, line)
			return nil
		},
	})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "previous command" {
		t.Errorf("handled lines = %v, want the preloaded entry", lines)
	}
}

func TestConfigFileSetsPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyline.toml")
	if err := os.WriteFile(path, []byte(`prompt = "db> "`), 0o644); err != nil {
		t.Fatal(err)
	}

	app, out := newTestApp(t, "exit\n", Options{ConfigPath: path})
	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "db> ") {
		t.Errorf("output = %q, want configured prompt", out.String())
	}
}

func TestNewMissingCompleteScript(t *testing.T) {
	_, err := New(Options{
		Input:          strings.NewReader(""),
		Output:         &bytes.Buffer{},
		CompleteScript: filepath.Join(t.TempDir(), "absent.lua"),
	})

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("err = %v, want *InitError", err)
	}
	if initErr.Component != "completion script" {
		t.Errorf("Component = %q", initErr.Component)
	}
}

func TestLuaCompletionEndToEnd(t *testing.T) {
	script := filepath.Join(t.TempDir(), "complete.lua")
	body := `
function complete(line)
	return { line .. "-done" }
end
`
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	var lines []string
	app, _ := newTestApp(t, "task\t\nexit\n", Options{
		CompleteScript: script,
		Handle: func(line string) error {
			lines = append(lines, line)
			return nil
		},
	})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "task-done" {
		t.Errorf("handled lines = %v, want the completed line", lines)
	}
}

func TestSessionID(t *testing.T) {
	a, _ := newTestApp(t, "exit\n", Options{})
	b, _ := newTestApp(t, "exit\n", Options{})

	if a.SessionID() == "" {
		t.Error("SessionID should not be empty")
	}
	if a.SessionID() == b.SessionID() {
		t.Error("sessions should have distinct identifiers")
	}
}
