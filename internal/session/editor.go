package session

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonwright/internal/geometry"
	"github.com/samdwyer/dungeonwright/internal/telemetry"
	"github.com/samdwyer/dungeonwright/internal/ui"
)

// Editor drives a session from terminal input.
type Editor struct {
	session  *Session
	screen   *ui.Screen
	renderer *ui.Renderer
	mode     Mode
	input    []rune
	message  string
	failed   bool
	running  bool
}

// NewEditor creates an editor drawing to screen.
func NewEditor(session *Session, screen *ui.Screen, renderer *ui.Renderer) *Editor {
	return &Editor{
		session:  session,
		screen:   screen,
		renderer: renderer,
		mode:     ModeView,
		message:  "Type :help for the list of commands.",
		running:  true,
	}
}

// Run executes the main editor loop until the user quits.
func (e *Editor) Run(ctx context.Context) error {
	_, span := telemetry.Tracer("session").Start(ctx, "session.run")
	span.SetAttributes(attribute.Int("level.rooms", len(e.session.Level().Rooms())))
	defer span.End()

	for e.running {
		e.render()
		e.HandleEvent(ctx, e.screen.PollEvent())
	}
	return nil
}

// Running reports whether the editor loop should continue.
func (e *Editor) Running() bool {
	return e.running
}

// Mode returns the current input mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// View returns what the renderer is asked to draw around the map.
func (e *Editor) View() ui.View {
	return ui.View{
		Mode:    e.mode.String(),
		Message: e.message,
		Failed:  e.failed,
		Prompt:  string(e.input),
		Editing: e.mode == ModeCommand,
	}
}

func (e *Editor) render() {
	e.renderer.Render(e.session.Level(), e.View())
}

// HandleEvent processes a single input event.
func (e *Editor) HandleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if e.mode == ModeCommand {
			e.handleCommandKey(ctx, ev)
		} else {
			e.handleViewKey(ctx, ev)
		}
	case *tcell.EventResize:
		e.screen.Sync()
	}
}

// handleViewKey processes keyboard input while browsing the map.
func (e *Editor) handleViewKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		e.running = false

	case tcell.KeyUp:
		e.moveFocus(geometry.North)
	case tcell.KeyDown:
		e.moveFocus(geometry.South)
	case tcell.KeyLeft:
		e.moveFocus(geometry.West)
	case tcell.KeyRight:
		e.moveFocus(geometry.East)

	case tcell.KeyRune:
		switch ev.Rune() {
		case ':':
			e.mode = ModeCommand
			e.input = e.input[:0]
		case 'u', 'U':
			e.show(e.session.Undo())
		case 'q', 'Q':
			e.running = false
		}
	}
}

// handleCommandKey processes keyboard input while typing a command line.
func (e *Editor) handleCommandKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.mode = ModeView
		e.input = e.input[:0]
	case tcell.KeyEnter:
		line := string(e.input)
		e.mode = ModeView
		e.input = e.input[:0]
		res := e.session.Exec(ctx, line)
		if res.Quit {
			e.running = false
			return
		}
		e.show(res)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
	case tcell.KeyRune:
		e.input = append(e.input, ev.Rune())
	}
}

func (e *Editor) moveFocus(dir geometry.Direction) {
	if e.session.MoveFocus(dir) {
		e.show(Result{})
		return
	}
	if current := e.session.Level().Current(); current != "" {
		e.show(Result{Message: fmt.Sprintf("Nothing %s of %s.", dir, current)})
	}
}

func (e *Editor) show(res Result) {
	e.message = res.Message
	e.failed = res.Failed
}

// Close cleans up editor resources.
func (e *Editor) Close() {
	if e.screen != nil {
		e.screen.Close()
	}
}
