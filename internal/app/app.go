// Package app wires the decoration engine to a live terminal: it
// loads a file into an in-memory buffer, paints decorations through
// the tcell surface, and feeds the engine change and cursor events
// from the interactive event loop.
package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/orgbullets/internal/config"
	"github.com/dshills/orgbullets/internal/decor"
	"github.com/dshills/orgbullets/internal/host"
	"github.com/dshills/orgbullets/internal/host/terminal"
)

// Options configures the application.
type Options struct {
	// Path is the file to open.
	Path string

	// ConfigPath is an optional configuration file (.json or .lua).
	ConfigPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Debounce overrides the change-coalescing interval.
	Debounce time.Duration
}

// App owns the demo session: buffer, paint surface, engine, cursor.
type App struct {
	opts Options
	log  *Logger
	cfg  config.Config

	buf     *host.MemoryBuffer
	painter *terminal.Painter
	engine  *decor.Engine
	screen  tcell.Screen

	cursor host.Cursor
	top    int
}

// New creates an application, resolving configuration and loading the
// file into the buffer. The terminal is not touched until Run.
func New(opts Options) (*App, error) {
	logger := NewLogger(os.Stderr, ParseLogLevel(opts.LogLevel))

	var cfgOpts config.Options
	if opts.ConfigPath != "" {
		var err error
		cfgOpts, err = config.LoadFile(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	cfg := cfgOpts.Resolve()

	if opts.Path == "" {
		return nil, ErrNoFile
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", opts.Path, err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	buf := host.NewMemoryBuffer(lines...)
	painter := terminal.NewPainter(buf, terminal.DefaultTheme(len(cfg.Symbols)))

	debounce := opts.Debounce
	if debounce == 0 {
		debounce = decor.DefaultDebounce
	}
	engine := decor.New(buf, painter, cfg,
		decor.WithMessenger(logger),
		decor.WithDebounce(debounce),
	)

	return &App{
		opts:    opts,
		log:     logger,
		cfg:     cfg,
		buf:     buf,
		painter: painter,
		engine:  engine,
	}, nil
}

// Config returns the resolved configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Run initializes the terminal and processes events until quit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	a.screen = screen
	defer a.Shutdown()

	a.log.Debugf("opened %s (%d lines)", a.opts.Path, a.buf.LineCount())
	a.engine.ResyncAll()

	for {
		// Settle pending change work first: the cursor feed must
		// never observe a range before its change event applied.
		a.engine.Flush()
		a.engine.CursorMoved(a.cursor.Line)
		a.draw()

		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if err := a.handleKey(ev); err != nil {
				return err
			}
		}
	}
}

// Shutdown releases the terminal and stops background work.
func (a *App) Shutdown() {
	a.engine.Close()
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
}

func (a *App) draw() {
	width, height := a.screen.Size()
	if height < 2 {
		return
	}
	content := height - 1

	a.scrollTo(content)
	a.painter.Draw(a.screen, a.top, content)
	a.drawStatus(width, height-1)

	a.screen.ShowCursor(a.cursorScreenX(), a.cursor.Line-a.top)
	a.screen.Show()
}

func (a *App) drawStatus(width, row int) {
	style := tcell.StyleDefault.Reverse(true)
	status := fmt.Sprintf(" %s  %d:%d  %d lines  %d decorated ",
		a.opts.Path, a.cursor.Line+1, a.cursor.Col, a.buf.LineCount(), a.engine.OverlayCount())

	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		a.screen.SetContent(x, row, ' ', nil, style)
	}
}

// scrollTo keeps the cursor line inside the visible content area.
func (a *App) scrollTo(height int) {
	if height < 1 {
		return
	}
	if a.cursor.Line < a.top {
		a.top = a.cursor.Line
	}
	if a.cursor.Line >= a.top+height {
		a.top = a.cursor.Line - height + 1
	}
	if a.top < 0 {
		a.top = 0
	}
}
