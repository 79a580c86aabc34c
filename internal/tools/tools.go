// Package tools exposes level edits as named functions taking JSON
// arguments, the surface driven by scripts, the interactive session and
// agent loops. Every call runs against a single level and is traced.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeonwright/internal/gamedata"
	"github.com/samdwyer/dungeonwright/internal/telemetry"
	"github.com/samdwyer/dungeonwright/internal/world"
)

var (
	// ErrUnknownFunction is returned for a name that is not registered.
	ErrUnknownFunction = errors.New("function not found")
	// ErrArguments is returned when arguments are missing, unknown or malformed.
	ErrArguments = errors.New("missing arguments")
)

// argError carries a decoding problem while matching ErrArguments.
type argError struct {
	err error
}

func (e *argError) Error() string        { return e.err.Error() }
func (e *argError) Unwrap() error        { return e.err }
func (e *argError) Is(target error) bool { return target == ErrArguments }

func argErr(format string, args ...any) error {
	return &argError{err: fmt.Errorf(format, args...)}
}

// Function describes one callable tool.
type Function struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    []string `json:"required"`
	ReadOnly    bool     `json:"-"` // Never changes the level

	call func(ctx context.Context, tb *Toolbox, level *world.Level, raw json.RawMessage) (string, error)
}

// define binds a typed handler to a function name. Arguments are decoded
// strictly: every required key must be present and unknown keys are rejected.
func define[A any](name, description string, required []string,
	handler func(ctx context.Context, tb *Toolbox, level *world.Level, args A) (string, error),
) Function {
	return Function{
		Name:        name,
		Description: description,
		Required:    required,
		call: func(ctx context.Context, tb *Toolbox, level *world.Level, raw json.RawMessage) (string, error) {
			var args A
			if err := decodeArgs(raw, required, &args); err != nil {
				return "", err
			}
			return handler(ctx, tb, level, args)
		},
	}
}

func decodeArgs(raw json.RawMessage, required []string, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return argErr("arguments must be a JSON object: %v", err)
	}
	var missing []string
	for _, key := range required {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return argErr("missing required arguments: %v", missing)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return argErr("%v", err)
	}
	return nil
}

// Toolbox dispatches function calls onto a level.
type Toolbox struct {
	funcs    map[string]Function
	bounds   gamedata.Bounds
	bestiary *gamedata.Bestiary
	rng      *rand.Rand
}

// Option configures a Toolbox.
type Option func(*Toolbox)

// WithRand sets the random source used to pick spawned enemies.
func WithRand(rng *rand.Rand) Option {
	return func(tb *Toolbox) { tb.rng = rng }
}

// New creates a toolbox validating entity stats against bounds and spawning
// enemies from bestiary.
func New(bounds gamedata.Bounds, bestiary *gamedata.Bestiary, opts ...Option) *Toolbox {
	tb := &Toolbox{
		funcs:    make(map[string]Function),
		bounds:   bounds,
		bestiary: bestiary,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, fs := range [][]Function{levelFunctions(), entityFunctions(), queryFunctions()} {
		for _, f := range fs {
			tb.funcs[f.Name] = f
		}
	}
	for _, opt := range opts {
		opt(tb)
	}
	return tb
}

// NewDefault creates a toolbox from the embedded bounds and bestiary.
func NewDefault(opts ...Option) (*Toolbox, error) {
	bounds, err := gamedata.LoadBounds()
	if err != nil {
		return nil, oops.In("tools").Wrapf(err, "loading entity bounds")
	}
	bestiary, err := gamedata.LoadBestiary()
	if err != nil {
		return nil, oops.In("tools").Wrapf(err, "loading bestiary")
	}
	return New(bounds, bestiary, opts...), nil
}

// Functions returns every registered function ordered by name.
func (tb *Toolbox) Functions() []Function {
	out := make([]Function, 0, len(tb.funcs))
	for _, f := range tb.funcs {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b Function) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Lookup returns the named function.
func (tb *Toolbox) Lookup(name string) (Function, bool) {
	f, ok := tb.funcs[name]
	return f, ok
}

// Call runs the named function with JSON arguments against the level.
func (tb *Toolbox) Call(ctx context.Context, level *world.Level, name string, args json.RawMessage) (msg string, err error) {
	ctx, span := telemetry.Tracer("tools").Start(ctx, "tools.call",
		trace.WithAttributes(attribute.String("tool.name", name)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	f, ok := tb.funcs[name]
	if !ok {
		return "", oops.In("tools").With("function", name).Wrapf(ErrUnknownFunction, "%s", name)
	}
	return f.call(ctx, tb, level, args)
}

// TryCall runs a function and always returns a message for the caller:
// the result on success, or a description of what went wrong.
func (tb *Toolbox) TryCall(ctx context.Context, level *world.Level, name string, args json.RawMessage) string {
	msg, err := tb.Call(ctx, level, name, args)
	if err != nil {
		return Message(name, err)
	}
	return msg
}

// Message formats a failed call the way callers are shown it.
func Message(name string, err error) string {
	var ae *argError
	switch {
	case errors.Is(err, ErrUnknownFunction):
		return fmt.Sprintf("Function %s not found.", name)
	case errors.As(err, &ae):
		return fmt.Sprintf("Missing arguments: %s", ae.Error())
	default:
		return fmt.Sprintf("Domain validation error: %s", err.Error())
	}
}
