// ABOUTME: Editor runs the render / read / dispatch loop until the quit chord or cancellation
// ABOUTME: Two states: Running and Terminating; terminating closes the session exactly once

package editor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mauromedda/bim-go/internal/keybindings"
	"github.com/mauromedda/bim-go/internal/log"
	"github.com/mauromedda/bim-go/pkg/tui"
	"github.com/mauromedda/bim-go/pkg/tui/input"
	"github.com/mauromedda/bim-go/pkg/tui/key"
	"github.com/mauromedda/bim-go/pkg/tui/terminal"
)

// State is the loop state.
type State int

const (
	Running State = iota
	Terminating
)

func (s State) String() string {
	if s == Terminating {
		return "terminating"
	}
	return "running"
}

// Prober re-measures the window after a resize.
type Prober func() (terminal.Size, string, error)

// Config wires an Editor to its collaborators.
type Config struct {
	Keys     input.KeyReader
	Renderer *tui.Renderer
	Content  tui.ContentProvider  // nil shows only banner and filler
	Size     terminal.Size        // initial geometry
	Resize   <-chan os.Signal     // nil when the platform has no resize events
	Reprobe  Prober               // required when Resize is set
	Closer   io.Closer            // restores the terminal on quit
	Bindings *keybindings.Manager // nil uses the default bindings
}

// Editor owns the cursor and the current geometry for one session.
type Editor struct {
	cfg    Config
	size   terminal.Size
	cursor tui.Cursor
	state  State
}

// New returns an Editor in the Running state with the cursor at the origin.
func New(cfg Config) *Editor {
	if cfg.Content == nil {
		cfg.Content = tui.Empty{}
	}
	if cfg.Bindings == nil {
		cfg.Bindings = keybindings.New(nil)
	}
	for k, actions := range cfg.Bindings.Conflicts() {
		log.Warn("key %q is bound to %v; %s wins", k, actions, actions[0])
	}
	return &Editor{cfg: cfg, size: cfg.Size}
}

// Run alternates strictly between one refresh and one key until the quit
// chord arrives or ctx is cancelled. Both paths close the session before
// returning; any refresh or read failure is returned as is.
func (e *Editor) Run(ctx context.Context) error {
	for e.state == Running {
		if err := ctx.Err(); err != nil {
			log.Info("loop cancelled: %v", err)
			return e.terminate(err)
		}
		if err := e.checkResize(); err != nil {
			return err
		}
		if err := e.cfg.Renderer.Refresh(e.size, e.cursor, e.cfg.Content); err != nil {
			return err
		}
		k, err := e.cfg.Keys.ReadKey()
		if err != nil {
			return err
		}
		e.Dispatch(k)
	}
	log.Info("quit")
	return e.terminate(nil)
}

func (e *Editor) terminate(cause error) error {
	e.state = Terminating
	if e.cfg.Closer == nil {
		return cause
	}
	if err := e.cfg.Closer.Close(); err != nil {
		if cause != nil {
			return fmt.Errorf("%w (closing session: %w)", cause, err)
		}
		return err
	}
	return cause
}

// checkResize re-probes the window if a resize is pending. It never blocks.
func (e *Editor) checkResize() error {
	if e.cfg.Resize == nil {
		return nil
	}
	select {
	case <-e.cfg.Resize:
	default:
		return nil
	}

	size, method, err := e.cfg.Reprobe()
	if err != nil {
		return err
	}
	log.Debug("resized to %dx%d via %s", size.Cols(), size.Rows(), method)
	e.size = size
	e.cursor = e.cursor.Clamp(size)
	return nil
}

// Dispatch applies one key to the editor state. None and keys without a
// binding leave the state unchanged.
func (e *Editor) Dispatch(k key.Key) {
	action := e.cfg.Bindings.ActionForKey(k)
	if action == keybindings.ActionQuit {
		e.state = Terminating
		return
	}

	rows, cols := e.size.Rows(), e.size.Cols()
	c := e.cursor
	switch action {
	case keybindings.ActionUp:
		c = c.Move(0, -1)
	case keybindings.ActionDown:
		c = c.Move(0, 1)
	case keybindings.ActionLeft:
		c = c.Move(-1, 0)
	case keybindings.ActionRight:
		c = c.Move(1, 0)
	case keybindings.ActionPageUp:
		c = c.Move(0, -rows)
	case keybindings.ActionPageDown:
		c = c.Move(0, rows)
	case keybindings.ActionLineStart:
		c.X = 0
	case keybindings.ActionLineEnd:
		c.X = cols - 1
	default:
		return
	}
	e.cursor = c.Clamp(e.size)
}

// Cursor returns the current cursor position.
func (e *Editor) Cursor() tui.Cursor { return e.cursor }

// Size returns the geometry the next frame is drawn with.
func (e *Editor) Size() terminal.Size { return e.size }

// State returns the loop state.
func (e *Editor) State() State { return e.state }
