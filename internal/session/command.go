package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrSyntax is returned for command lines that cannot be tokenized.
var ErrSyntax = errors.New("invalid command line")

// Command is a parsed command line: a name followed by key=value arguments.
type Command struct {
	Name string
	Args map[string]any
	// Words are bare arguments without a key, used by built-in commands.
	Words []string
}

// JSON encodes the keyed arguments as a JSON object.
func (c Command) JSON() (json.RawMessage, error) {
	if len(c.Words) > 0 {
		return nil, fmt.Errorf("%w: %s takes key=value arguments only, got %q", ErrSyntax, c.Name, c.Words[0])
	}
	args := c.Args
	if args == nil {
		args = map[string]any{}
	}
	return json.Marshal(args)
}

// ParseCommand splits a line such as
//
//	add_room name=Hall description="A long hall" room_from=Gate direction=east
//
// into a Command. Quoted values are always strings; unquoted values that
// parse as numbers become numbers.
func ParseCommand(line string) (Command, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return Command{}, err
	}
	if len(tokens) == 0 {
		return Command{}, nil
	}
	cmd := Command{Name: tokens[0].text}
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok.text, "=")
		if !ok || tok.keyQuoted {
			cmd.Words = append(cmd.Words, tok.text)
			continue
		}
		if key == "" {
			return Command{}, fmt.Errorf("%w: empty key in %q", ErrSyntax, tok.text)
		}
		if cmd.Args == nil {
			cmd.Args = make(map[string]any)
		}
		if _, dup := cmd.Args[key]; dup {
			return Command{}, fmt.Errorf("%w: %s given twice", ErrSyntax, key)
		}
		cmd.Args[key] = value
		if !tok.valueQuoted {
			if n, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
				cmd.Args[key] = n
			}
		}
	}
	return cmd, nil
}

type token struct {
	text        string
	keyQuoted   bool // Quote opened before any '='
	valueQuoted bool // Quote opened after the '='
}

func tokenize(line string) ([]token, error) {
	var (
		tokens  []token
		cur     strings.Builder
		tok     token
		inToken bool
		quoted  bool
		escaped bool
	)
	flush := func() {
		if inToken {
			tok.text = cur.String()
			tokens = append(tokens, tok)
		}
		cur.Reset()
		tok = token{}
		inToken = false
	}

	for _, ch := range line {
		switch {
		case escaped:
			cur.WriteRune(ch)
			escaped = false
		case ch == '\\' && quoted:
			escaped = true
		case ch == '"':
			if !quoted {
				if strings.ContainsRune(cur.String(), '=') {
					tok.valueQuoted = true
				} else {
					tok.keyQuoted = true
				}
			}
			quoted = !quoted
			inToken = true
		case unicode.IsSpace(ch) && !quoted:
			flush()
		default:
			cur.WriteRune(ch)
			inToken = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote", ErrSyntax)
	}
	flush()
	return tokens, nil
}
