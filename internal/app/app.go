// Package app wires the editor, configuration, history persistence, and
// completion scripting into the keyline shell and manages its lifecycle.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/editor"
	"github.com/dshills/keyline/internal/engine/complete"
	"github.com/dshills/keyline/internal/histfile"
	"github.com/dshills/keyline/internal/term"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// HistoryFile overrides the configured history persistence path.
	HistoryFile string

	// Prompt overrides the configured prompt text.
	Prompt string

	// CompleteScript overrides the configured Lua completion script.
	CompleteScript string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Debug enables debug mode with extra logging.
	Debug bool

	// Input is the key byte stream. Defaults to os.Stdin.
	Input io.Reader

	// Output is where the prompt is rendered and submitted lines are
	// echoed. Defaults to os.Stdout.
	Output io.Writer

	// Handle receives each submitted non-empty line. When nil, lines are
	// echoed to Output.
	Handle func(line string) error
}

// Application coordinates one interactive session: it owns the editor,
// reloads configuration on file changes, and persists history.
type Application struct {
	mu sync.Mutex

	opts      Options
	cfg       config.Config
	logger    *Logger
	sessionID string

	editor   *editor.Editor
	provider *complete.LuaProvider
	watcher  *config.Watcher
	output   io.Writer

	// pending holds a reloaded config to apply between captures.
	pending atomic.Pointer[config.Config]

	running atomic.Bool
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		var err error
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
	}
	applyOverrides(&cfg, opts)

	level := ParseLogLevel(cfg.LogLevel)
	if opts.Debug {
		level = LogLevelDebug
	}
	sessionID := uuid.NewString()
	logger := NewLogger(LoggerConfig{Level: level, Prefix: "keyline"}).
		WithField("session", sessionID[:8])

	app := &Application{
		opts:      opts,
		cfg:       cfg,
		logger:    logger,
		sessionID: sessionID,
		output:    opts.Output,
	}

	if err := app.bootstrap(); err != nil {
		app.closeResources()
		return nil, err
	}
	return app, nil
}

// applyOverrides lets command-line options win over the config file.
func applyOverrides(cfg *config.Config, opts Options) {
	if opts.HistoryFile != "" {
		cfg.HistoryFile = opts.HistoryFile
	}
	if opts.Prompt != "" {
		cfg.Prompt = opts.Prompt
	}
	if opts.CompleteScript != "" {
		cfg.CompleteScript = opts.CompleteScript
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
}

// bootstrap initializes the components in dependency order.
func (app *Application) bootstrap() error {
	editorOpts := []editor.Option{
		editor.WithInput(app.opts.Input),
		editor.WithOutput(app.opts.Output),
		editor.WithPrompt(editor.NewPrompt(app.cfg.Prompt)),
		editor.WithHistoryCapacity(app.cfg.HistoryCapacity),
		editor.WithNavigationWindow(app.cfg.NavigationWindow),
		editor.WithLogger(app.logger.WithComponent("editor")),
	}

	// Raw mode only applies when keys really come from a terminal; piped
	// input and tests read the stream as-is.
	if f, ok := app.opts.Input.(*os.File); ok {
		if tty := term.New(f); tty.IsTerminal() {
			editorOpts = append(editorOpts, editor.WithTerminal(tty))
		}
	}

	if app.cfg.CompleteScript != "" {
		provider, err := complete.NewLuaProvider(app.cfg.CompleteScript)
		if err != nil {
			return &InitError{Component: "completion script", Err: err}
		}
		app.provider = provider
		editorOpts = append(editorOpts, editor.WithCompleter(provider))
	}

	app.editor = editor.New(editorOpts...)

	if app.cfg.HistoryFile != "" {
		entries, err := histfile.Load(app.cfg.HistoryFile)
		if err != nil {
			app.logger.Warn("loading history: %v", err)
		}
		for _, e := range entries {
			app.editor.History().Append(e.Line)
		}
		app.logger.Debug("loaded %d history entries", len(entries))
	}

	if app.opts.ConfigPath != "" {
		watcher, err := config.Watch(app.opts.ConfigPath, app.onReload)
		if err != nil {
			app.logger.Warn("watching config: %v", err)
		} else {
			app.watcher = watcher
		}
	}
	return nil
}

// onReload stages a freshly loaded config; it is applied between
// captures, never while one is in flight.
func (app *Application) onReload(cfg config.Config, err error) {
	if err != nil {
		app.logger.Warn("reloading config: %v", err)
		return
	}
	applyOverrides(&cfg, app.opts)
	app.pending.Store(&cfg)
	app.logger.Info("configuration reloaded")
}

// applyPending picks up a staged config reload.
func (app *Application) applyPending() {
	cfg := app.pending.Swap(nil)
	if cfg == nil {
		return
	}
	app.cfg = *cfg
	app.editor.SetPrompt(editor.NewPrompt(cfg.Prompt))
	app.editor.SetHistoryCapacity(cfg.HistoryCapacity)
	app.editor.SetNavigationWindow(cfg.NavigationWindow)
	app.logger.SetLevel(ParseLogLevel(cfg.LogLevel))
}

// SessionID returns the unique identifier of this session.
func (app *Application) SessionID() string {
	return app.sessionID
}

// Run captures lines until the input ends or a quit command is
// submitted. Ctrl-C abandons the current line and continues; end of
// stream is a normal quit, surfaced as ErrQuit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.logger.Debug("session started")
	for {
		app.applyPending()

		line, err := app.editor.Capture()
		switch {
		case errors.Is(err, editor.ErrInterrupted):
			continue
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return ErrQuit
		case err != nil:
			return err
		}

		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return ErrQuit
		}

		if app.cfg.HistoryFile != "" {
			if err := histfile.Append(app.cfg.HistoryFile, line, time.Now()); err != nil {
				app.logger.Warn("persisting history: %v", err)
			}
		}

		if err := app.handle(line); err != nil {
			return err
		}
	}
}

func (app *Application) handle(line string) error {
	if app.opts.Handle != nil {
		return app.opts.Handle(line)
	}
	_, err := fmt.Fprintf(app.output, "%s\r\n", line)
	return err
}

// Shutdown releases resources and trims the persisted history to the
// in-memory retention bound. Safe to call more than once.
func (app *Application) Shutdown() {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.closeResourcesLocked()
	if app.editor != nil && app.cfg.HistoryFile != "" {
		if err := histfile.Save(app.cfg.HistoryFile, app.editor.History().All(), time.Now()); err != nil {
			app.logger.Warn("saving history: %v", err)
		}
		app.editor = nil
	}
}

func (app *Application) closeResources() {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.closeResourcesLocked()
}

func (app *Application) closeResourcesLocked() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil && !errors.Is(err, config.ErrWatcherClosed) {
			app.logger.Warn("closing config watcher: %v", err)
		}
		app.watcher = nil
	}
	if app.provider != nil {
		app.provider.Close()
		app.provider = nil
	}
}
