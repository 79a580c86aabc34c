// Command levelctl applies a script of editor commands to a level and prints
// the result as a colored map.
//
// Usage:
//
//	levelctl [-load level.json] [-save out.json] [-strict] [-describe] [script]
//
// The script holds one command per line, as typed in the editor; blank lines
// and lines starting with # are skipped. Without a script, commands are read
// from standard input.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/dungeonwright/internal/config"
	"github.com/samdwyer/dungeonwright/internal/gamedata"
	"github.com/samdwyer/dungeonwright/internal/session"
	"github.com/samdwyer/dungeonwright/internal/tools"
	"github.com/samdwyer/dungeonwright/internal/ui"
)

// errRejected is returned in strict mode when a command fails.
var errRejected = errors.New("command rejected")

var (
	styleCommand = color.Style{color.FgGray}
	styleOK      = color.Style{color.FgGreen}
	styleFailed  = color.Style{color.FgRed, color.OpBold}
)

type options struct {
	load     string
	save     string
	strict   bool
	describe bool
	width    int // Map width limit, 0 for none
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	var opts options
	flag.StringVar(&opts.load, "load", "", "level file to start from")
	flag.StringVar(&opts.save, "save", "", "file to write the resulting level to")
	flag.BoolVar(&opts.strict, "strict", false, "stop at the first rejected command")
	flag.BoolVar(&opts.describe, "describe", false, "print the level description after the map")
	flag.Parse()

	fd := int(os.Stdout.Fd())
	color.Enable = term.IsTerminal(fd)
	if color.Enable {
		if w, _, err := term.GetSize(fd); err == nil {
			opts.width = w
		}
	}

	script := io.Reader(os.Stdin)
	if name := flag.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("Failed to open script: %v", err)
		}
		defer f.Close()
		script = f
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := run(context.Background(), cfg, opts, script, os.Stdout); err != nil {
		log.Fatalf("levelctl: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, script io.Reader, out io.Writer) error {
	tb, err := tools.NewDefault()
	if err != nil {
		return err
	}
	sess := session.New(cfg.Limits, tb, cfg.SavePath)
	if opts.load != "" {
		if err := sess.Load(opts.load); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(script)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res := sess.Exec(ctx, line)
		if res.Quit {
			break
		}
		fmt.Fprintln(out, styleCommand.Sprint("> "+line))
		if res.Failed {
			fmt.Fprintln(out, styleFailed.Sprint(res.Message))
			if opts.strict {
				return fmt.Errorf("line %d: %w", lineNo, errRejected)
			}
			continue
		}
		fmt.Fprintln(out, styleOK.Sprint(res.Message))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	palette, err := gamedata.LoadPalette()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	printMap(out, ui.Plot(sess.Level()), palette, opts.width)
	if opts.describe {
		fmt.Fprintln(out)
		fmt.Fprintln(out, sess.Level().String())
	}

	if opts.save != "" {
		if err := sess.Save(opts.save); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved level to %s.\n", opts.save)
	}
	return nil
}
