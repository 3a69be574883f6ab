// ABOUTME: Tests for the editor loop: strict refresh/read alternation, movement clamping, quit and resize.
// ABOUTME: Drives the loop with a scripted KeyReader and counts frames through a recording writer.

package editor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/mauromedda/bim-go/internal/keybindings"
	"github.com/mauromedda/bim-go/internal/log"
	"github.com/mauromedda/bim-go/pkg/tui"
	"github.com/mauromedda/bim-go/pkg/tui/ansi"
	"github.com/mauromedda/bim-go/pkg/tui/input"
	"github.com/mauromedda/bim-go/pkg/tui/key"
	"github.com/mauromedda/bim-go/pkg/tui/terminal"
)

// frameLog records each frame write and the interleaving with key reads.
type frameLog struct {
	events []string
	frames []string
}

func (f *frameLog) Write(p []byte) (int, error) {
	f.events = append(f.events, "frame")
	f.frames = append(f.frames, string(p))
	return len(p), nil
}

// scriptKeys returns keys in order, then Quit forever.
type scriptKeys struct {
	log  *frameLog
	keys []key.Key
	err  error
}

func (s *scriptKeys) ReadKey() (key.Key, error) {
	s.log.events = append(s.log.events, "read")
	if len(s.keys) == 0 {
		if s.err != nil {
			return key.None, s.err
		}
		return key.Quit, nil
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

// resizeSignal stands in for SIGWINCH on every platform.
type resizeSignal struct{}

func (resizeSignal) String() string { return "window changed" }
func (resizeSignal) Signal()        {}

type countingCloser struct{ n int }

func (c *countingCloser) Close() error { c.n++; return nil }

func size(t *testing.T, rows, cols int) terminal.Size {
	t.Helper()
	s, err := terminal.NewSize(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newEditor(t *testing.T, keys ...key.Key) (*Editor, *frameLog, *countingCloser) {
	t.Helper()
	fl := &frameLog{}
	closer := &countingCloser{}
	e := New(Config{
		Keys:     &scriptKeys{log: fl, keys: keys},
		Renderer: tui.NewRenderer(fl, "bim editor -- version test"),
		Size:     size(t, 20, 80),
		Closer:   closer,
	})
	return e, fl, closer
}

var (
	up    = key.Key{Type: key.KeyUp}
	down  = key.Key{Type: key.KeyDown}
	left  = key.Key{Type: key.KeyLeft}
	right = key.Key{Type: key.KeyRight}
)

func TestRun_AlternatesAndQuits(t *testing.T) {
	t.Parallel()

	e, fl, closer := newEditor(t, key.Key{Type: key.KeyRune, Rune: 'a'}, key.None, down)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "frame read frame read frame read frame read"
	if got := strings.Join(fl.events, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
	if closer.n != 1 {
		t.Errorf("Close called %d times, want 1", closer.n)
	}
	if e.State() != Terminating {
		t.Errorf("State() = %v, want terminating", e.State())
	}
}

func TestRun_ReadErrorStopsLoop(t *testing.T) {
	t.Parallel()

	fl := &frameLog{}
	readErr := errors.Join(input.ErrRead, syscall.EIO)
	e := New(Config{
		Keys:     &scriptKeys{log: fl, err: readErr},
		Renderer: tui.NewRenderer(fl, ""),
		Size:     size(t, 20, 80),
	})

	if err := e.Run(context.Background()); !errors.Is(err, input.ErrRead) {
		t.Fatalf("Run err = %v, want ErrRead", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	e, fl, closer := newEditor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	if len(fl.frames) != 0 {
		t.Errorf("drew %d frames after cancellation, want 0", len(fl.frames))
	}
	if closer.n != 1 {
		t.Errorf("Close called %d times, want 1", closer.n)
	}
}

func TestRun_ResizeReprobes(t *testing.T) {
	t.Parallel()

	fl := &frameLog{}
	resize := make(chan os.Signal, 1)
	resize <- resizeSignal{}
	probes := 0
	e := New(Config{
		Keys:     &scriptKeys{log: fl},
		Renderer: tui.NewRenderer(fl, ""),
		Size:     size(t, 20, 80),
		Resize:   resize,
		Reprobe: func() (terminal.Size, string, error) {
			probes++
			s, err := terminal.NewSize(10, 40)
			return s, "ioctl", err
		},
	})
	e.cursor = tui.Cursor{X: 70, Y: 15}

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if probes != 1 {
		t.Errorf("reprobed %d times, want 1", probes)
	}
	if got := e.Size(); got.Rows() != 10 || got.Cols() != 40 {
		t.Errorf("Size() = %v, want 10x40", got)
	}
	if got, want := e.Cursor(), (tui.Cursor{X: 39, Y: 9}); got != want {
		t.Errorf("Cursor() = %+v, want %+v after resize clamp", got, want)
	}
	if n := strings.Count(fl.frames[0], ansi.ClearLine); n != 10 {
		t.Errorf("first frame has %d rows, want 10", n)
	}
}

func TestRun_ResizeProbeFailure(t *testing.T) {
	t.Parallel()

	fl := &frameLog{}
	resize := make(chan os.Signal, 1)
	resize <- resizeSignal{}
	e := New(Config{
		Keys:     &scriptKeys{log: fl},
		Renderer: tui.NewRenderer(fl, ""),
		Size:     size(t, 20, 80),
		Resize:   resize,
		Reprobe: func() (terminal.Size, string, error) {
			return terminal.Size{}, "", terminal.ErrProbe
		},
	})

	if err := e.Run(context.Background()); !errors.Is(err, terminal.ErrProbe) {
		t.Fatalf("Run err = %v, want ErrProbe", err)
	}
}

func TestDispatch_Clamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start tui.Cursor
		key   key.Key
		want  tui.Cursor
	}{
		{name: "left at origin", start: tui.Cursor{}, key: left, want: tui.Cursor{}},
		{name: "up at origin", start: tui.Cursor{}, key: up, want: tui.Cursor{}},
		{name: "right at edge", start: tui.Cursor{X: 79}, key: right, want: tui.Cursor{X: 79}},
		{name: "down at edge", start: tui.Cursor{Y: 19}, key: down, want: tui.Cursor{Y: 19}},
		{name: "right", start: tui.Cursor{X: 5, Y: 5}, key: right, want: tui.Cursor{X: 6, Y: 5}},
		{name: "down", start: tui.Cursor{X: 5, Y: 5}, key: down, want: tui.Cursor{X: 5, Y: 6}},
		{name: "left", start: tui.Cursor{X: 5, Y: 5}, key: left, want: tui.Cursor{X: 4, Y: 5}},
		{name: "up", start: tui.Cursor{X: 5, Y: 5}, key: up, want: tui.Cursor{X: 5, Y: 4}},
		{name: "page down", start: tui.Cursor{X: 5, Y: 5}, key: key.Key{Type: key.KeyPageDown}, want: tui.Cursor{X: 5, Y: 19}},
		{name: "page up", start: tui.Cursor{X: 5, Y: 5}, key: key.Key{Type: key.KeyPageUp}, want: tui.Cursor{X: 5, Y: 0}},
		{name: "home", start: tui.Cursor{X: 42, Y: 3}, key: key.Key{Type: key.KeyHome}, want: tui.Cursor{X: 0, Y: 3}},
		{name: "end", start: tui.Cursor{X: 2, Y: 3}, key: key.Key{Type: key.KeyEnd}, want: tui.Cursor{X: 79, Y: 3}},
		{name: "rune ignored", start: tui.Cursor{X: 2, Y: 3}, key: key.Key{Type: key.KeyRune, Rune: 'x'}, want: tui.Cursor{X: 2, Y: 3}},
		{name: "none ignored", start: tui.Cursor{X: 2, Y: 3}, key: key.None, want: tui.Cursor{X: 2, Y: 3}},
		{name: "other chord ignored", start: tui.Cursor{X: 2, Y: 3}, key: key.Ctrl('s'), want: tui.Cursor{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, _, _ := newEditor(t)
			e.cursor = tt.start
			e.Dispatch(tt.key)
			if got := e.Cursor(); got != tt.want {
				t.Errorf("Dispatch(%v) from %+v = %+v, want %+v", tt.key, tt.start, got, tt.want)
			}
			if e.State() != Running {
				t.Errorf("State() = %v, want running", e.State())
			}
		})
	}
}

func TestDispatch_Quit(t *testing.T) {
	t.Parallel()

	e, _, closer := newEditor(t)
	e.Dispatch(key.Quit)
	if e.State() != Terminating {
		t.Errorf("State() = %v, want terminating", e.State())
	}
	if closer.n != 0 {
		t.Error("Dispatch must not close the session itself")
	}
}

func TestDispatch_CustomBindings(t *testing.T) {
	t.Parallel()

	e, _, _ := newEditor(t)
	e.cfg.Bindings = keybindings.New(map[keybindings.Action][]string{
		keybindings.ActionRight: {"l"},
		keybindings.ActionDown:  {"j"},
	})

	e.Dispatch(key.Key{Type: key.KeyRune, Rune: 'l'})
	e.Dispatch(key.Key{Type: key.KeyRune, Rune: 'j'})
	e.Dispatch(right)
	if got, want := e.Cursor(), (tui.Cursor{X: 1, Y: 1}); got != want {
		t.Errorf("Cursor() = %+v, want %+v", got, want)
	}

	e.Dispatch(key.Quit)
	if e.State() != Terminating {
		t.Errorf("State() = %v, want terminating", e.State())
	}
}

// Not parallel: swaps the global log output.
func TestNew_WarnsAboutConflictingBindings(t *testing.T) {
	var buf bytes.Buffer
	savedLevel := log.GetLevel()
	log.SetLevel(log.LevelWarn)
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(nil)
		log.SetLevel(savedLevel)
	})

	New(Config{Bindings: keybindings.New(map[keybindings.Action][]string{
		keybindings.ActionLeft:      {"left", "h"},
		keybindings.ActionLineStart: {"home", "h"},
	})})

	out := buf.String()
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, `key "h"`) {
		t.Errorf("log = %q, want a warning for key h", out)
	}
	if !strings.Contains(out, "cursorLeft wins") {
		t.Errorf("log = %q, want cursorLeft to win", out)
	}

	buf.Reset()
	New(Config{})
	if buf.Len() != 0 {
		t.Errorf("default bindings logged %q, want nothing", buf.String())
	}
}

func TestRun_CursorPlacedInFrame(t *testing.T) {
	t.Parallel()

	e, fl, _ := newEditor(t, right, right, down)
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	last := fl.frames[len(fl.frames)-1]
	if !strings.Contains(last, ansi.CursorTo(2, 3)) {
		t.Errorf("last frame lacks cursor at row 2 col 3: %q", last[len(last)-20:])
	}
}

func TestLines_Row(t *testing.T) {
	t.Parallel()

	l := Lines{"one", "two"}
	tests := []struct {
		y      int
		want   string
		wantOK bool
	}{
		{y: 0, want: "one", wantOK: true},
		{y: 1, want: "two", wantOK: true},
		{y: 2},
		{y: -1},
	}
	for _, tt := range tests {
		got, ok := l.Row(tt.y)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Row(%d) = (%q, %v), want (%q, %v)", tt.y, got, ok, tt.want, tt.wantOK)
		}
	}
}
