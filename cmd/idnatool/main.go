// idnatool is a CLI tool to convert and validate internationalized domain
// names and labels.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/publicsuffix/idnatools/idna"
)

func main() {
	root := &command.C{
		Name:  filepath.Base(os.Args[0]),
		Usage: "command [flags] ...\nhelp [command]",
		Help:  "A command-line tool to convert and validate IDNA domain names and labels.",
		Commands: []*command.C{
			{
				Name:     "toascii",
				Usage:    "[name ...]",
				Help:     "Convert Unicode domain names to their ASCII-Compatible Encoding.\n\nWith no arguments, reads one name per line from stdin.",
				SetFlags: command.Flags(flax.MustBind, &toASCIIArgs),
				Run:      command.Adapt(runToASCII),
			},
			{
				Name:     "tounicode",
				Usage:    "[name ...]",
				Help:     "Convert ASCII-Compatible-Encoded domain names to Unicode.\n\nWith no arguments, reads one name per line from stdin.",
				SetFlags: command.Flags(flax.MustBind, &toUnicodeArgs),
				Run:      command.Adapt(runToUnicode),
			},
			{
				Name:     "validate",
				Usage:    "[name ...]",
				Help:     "Validate domain names and report any IDNA errors found.\n\nWith no arguments, reads one name per line from stdin.",
				SetFlags: command.Flags(flax.MustBind, &validateArgs),
				Run:      command.Adapt(runValidate),
			},

			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx).MergeFlags(true)
	command.RunOrFail(env, os.Args[1:])
}

// profileArgs are the flags shared by toascii, tounicode, and validate: they
// select which Profile the underlying idna package builds.
type profileArgs struct {
	Label        bool `flag:"label,Treat each input as a single label rather than a dotted name"`
	Transitional bool `flag:"transitional,Use transitional processing for deviation characters"`
	STD3         bool `flag:"std3,default=true,Reject non-LDH ASCII characters (UseSTD3Rules)"`
	ContextO     bool `flag:"contexto,default=true,Check CONTEXTO rules"`
	NoBidi       bool `flag:"no-bidi,Disable the BiDi rule check"`
	NoLength     bool `flag:"no-length,Disable DNS length validation"`
}

func (a profileArgs) profile() *idna.Profile {
	opts := []idna.Option{
		idna.MapForLookup(),
		idna.Transitional(a.Transitional),
		idna.ValidateLabels(true),
		idna.StrictDomainName(a.STD3),
		idna.CheckContextO(a.ContextO),
		idna.VerifyDNSLength(!a.NoLength),
	}
	if !a.NoBidi {
		opts = append(opts, idna.BidiRule())
	}
	return idna.New(opts...)
}

var toASCIIArgs profileArgs

func runToASCII(env *command.Env, names ...string) error {
	p := toASCIIArgs.profile()
	return forEachInput(env, names, func(s string) (string, *idna.IDNAInfo) {
		if toASCIIArgs.Label {
			return p.LabelToASCII(s)
		}
		return p.NameToASCII(s)
	})
}

var toUnicodeArgs profileArgs

func runToUnicode(env *command.Env, names ...string) error {
	p := toUnicodeArgs.profile()
	return forEachInput(env, names, func(s string) (string, *idna.IDNAInfo) {
		if toUnicodeArgs.Label {
			return p.LabelToUnicode(s)
		}
		return p.NameToUnicode(s)
	})
}

var validateArgs profileArgs

func runValidate(env *command.Env, names ...string) error {
	p := validateArgs.profile()
	nerrs := 0
	err := forEachLine(names, func(s string) error {
		var info *idna.IDNAInfo
		if validateArgs.Label {
			_, info = p.LabelToASCII(s)
		} else {
			_, info = p.NameToASCII(s)
		}
		if info.HasErrors() {
			nerrs++
			fmt.Fprintf(env, "%s: %s\n", s, info)
		} else {
			fmt.Fprintf(env, "%s: ok\n", s)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if nerrs > 0 {
		return fmt.Errorf("%d of the given names failed validation", nerrs)
	}
	return nil
}

// forEachInput runs convert over each input name (from args, or stdin if
// args is empty) and prints "input -> output" for each, along with any
// IDNAInfo errors. It returns an error if any conversion reported errors.
func forEachInput(env *command.Env, names []string, convert func(string) (string, *idna.IDNAInfo)) error {
	nerrs := 0
	err := forEachLine(names, func(s string) error {
		out, info := convert(s)
		if info.HasErrors() {
			nerrs++
			fmt.Fprintf(env, "%s -> %s (%s)\n", s, out, info)
		} else {
			fmt.Fprintf(env, "%s -> %s\n", s, out)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if nerrs > 0 {
		return fmt.Errorf("%d of the given names failed validation", nerrs)
	}
	return nil
}

// forEachLine calls fn for each name in names, or for each line of stdin if
// names is empty.
func forEachLine(names []string, fn func(string) error) error {
	if len(names) > 0 {
		for _, n := range names {
			if err := fn(n); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			if err := fn(line); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}
