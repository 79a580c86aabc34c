package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/dungeonwright/internal/geometry"
	"github.com/samdwyer/dungeonwright/internal/store"
	"github.com/samdwyer/dungeonwright/internal/telemetry"
	"github.com/samdwyer/dungeonwright/internal/tools"
	"github.com/samdwyer/dungeonwright/internal/world"
)

// historyLimit caps the number of edits that can be undone.
const historyLimit = 50

// Result is the outcome of one command line.
type Result struct {
	Message string
	Failed  bool
	Quit    bool
}

// Session owns a level and applies command lines to it, one at a time.
type Session struct {
	level      *world.Level
	tools      *tools.Toolbox
	limits     world.Limits
	savePath   string
	transcript []string         // Successful edits, oldest first
	history    []world.Snapshot // Level before each edit in transcript
}

// New creates a session editing an empty level.
func New(limits world.Limits, tb *tools.Toolbox, savePath string) *Session {
	return &Session{
		level:    world.NewLevel(limits),
		tools:    tb,
		limits:   limits,
		savePath: savePath,
	}
}

// Level returns the level being edited.
func (s *Session) Level() *world.Level {
	return s.level
}

// Transcript returns the command lines of the edits applied so far.
func (s *Session) Transcript() []string {
	return s.transcript
}

// Exec runs one command line: a tool call, or one of the built-in commands
// help, save, load, undo and quit.
func (s *Session) Exec(ctx context.Context, line string) (res Result) {
	ctx, span := telemetry.Tracer("session").Start(ctx, "session.exec")
	defer func() {
		if res.Failed {
			span.SetStatus(codes.Error, res.Message)
		}
		span.End()
	}()

	cmd, err := ParseCommand(line)
	if err != nil {
		return Result{Message: err.Error(), Failed: true}
	}
	span.SetAttributes(attribute.String("command", cmd.Name))

	switch cmd.Name {
	case "":
		return Result{}
	case "quit", "exit":
		return Result{Quit: true}
	case "help":
		return s.help(cmd)
	case "save":
		return s.save(cmd)
	case "load":
		return s.load(cmd)
	case "undo":
		return s.Undo()
	}
	return s.call(ctx, strings.TrimSpace(line), cmd)
}

func (s *Session) call(ctx context.Context, line string, cmd Command) Result {
	args, err := cmd.JSON()
	if err != nil {
		return Result{Message: tools.Message(cmd.Name, err), Failed: true}
	}
	f, known := s.tools.Lookup(cmd.Name)
	mutating := known && !f.ReadOnly

	var before world.Snapshot
	if mutating {
		before = s.level.Snapshot()
	}
	msg, err := s.tools.Call(ctx, s.level, cmd.Name, args)
	if err != nil {
		return Result{Message: tools.Message(cmd.Name, err), Failed: true}
	}
	if mutating {
		s.record(line, before)
	}
	return Result{Message: msg}
}

func (s *Session) record(line string, before world.Snapshot) {
	s.transcript = append(s.transcript, line)
	s.history = append(s.history, before)
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}
}

// Undo restores the level as it was before the last edit.
func (s *Session) Undo() Result {
	if len(s.history) == 0 {
		return Result{Message: "Nothing to undo.", Failed: true}
	}
	last := len(s.history) - 1
	level, err := world.Restore(s.limits, s.history[last])
	if err != nil {
		return Result{Message: fmt.Sprintf("Could not undo: %v", err), Failed: true}
	}
	s.level = level
	s.history = s.history[:last]
	undone := s.transcript[len(s.transcript)-1]
	s.transcript = s.transcript[:len(s.transcript)-1]
	return Result{Message: fmt.Sprintf("Undid %s.", strings.Fields(undone)[0])}
}

func (s *Session) help(cmd Command) Result {
	if len(cmd.Words) == 0 {
		var names []string
		for _, f := range s.tools.Functions() {
			names = append(names, f.Name)
		}
		names = append(names, "save", "load", "undo", "quit")
		return Result{Message: "Commands: " + strings.Join(names, ", ")}
	}
	f, ok := s.tools.Lookup(cmd.Words[0])
	if !ok {
		return Result{Message: fmt.Sprintf("Function %s not found.", cmd.Words[0]), Failed: true}
	}
	msg := f.Description
	if len(f.Required) > 0 {
		msg += " Arguments: " + strings.Join(f.Required, ", ")
	}
	return Result{Message: msg}
}

func (s *Session) path(cmd Command) string {
	if len(cmd.Words) > 0 {
		return cmd.Words[0]
	}
	return s.savePath
}

func (s *Session) save(cmd Command) Result {
	path := s.path(cmd)
	if err := s.Save(path); err != nil {
		return Result{Message: fmt.Sprintf("Could not save level: %v", err), Failed: true}
	}
	return Result{Message: fmt.Sprintf("Saved level to %s.", path)}
}

func (s *Session) load(cmd Command) Result {
	path := s.path(cmd)
	if err := s.Load(path); err != nil {
		return Result{Message: fmt.Sprintf("Could not load level: %v", err), Failed: true}
	}
	return Result{Message: fmt.Sprintf("Loaded level from %s.", path)}
}

// Save writes the level and transcript to path.
func (s *Session) Save(path string) error {
	return store.Save(path, s.level, s.transcript)
}

// Load replaces the level with the one saved at path. Undo history is cleared.
func (s *Session) Load(path string) error {
	level, transcript, err := store.Load(path, s.limits)
	if err != nil {
		return err
	}
	s.level = level
	s.transcript = transcript
	s.history = nil
	slog.Debug("level loaded", "path", path, "rooms", len(level.Rooms()))
	return nil
}

// MoveFocus moves the current room to its neighbor in the given direction.
// When a corridor is current, it moves to the endpoint lying that way.
// It returns false if nothing lies in that direction.
func (s *Session) MoveFocus(dir geometry.Direction) bool {
	current := s.level.Current()
	if neighbors, ok := s.level.Connections(current); ok {
		next, ok := neighbors[dir]
		if !ok {
			return false
		}
		return s.level.SetCurrent(next) == nil
	}
	for _, c := range s.level.Corridors() {
		if s.level.CorridorName(c) != current {
			continue
		}
		from, to := s.level.Endpoints(c)
		switch dir {
		case c.Direction:
			return s.level.SetCurrent(to.Name) == nil
		case c.Direction.Opposite():
			return s.level.SetCurrent(from.Name) == nil
		}
	}
	return false
}
