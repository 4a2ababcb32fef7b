// Package main is the entry point for the qnote notes tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/itzCozi/QNote-sub000/internal/app"
	"github.com/itzCozi/QNote-sub000/internal/engine/search"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks a bad invocation; the message is already printed.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run())
}

func run() int {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.NotesDir, "notes", "", "Note directory (overrides configuration)")
	flag.StringVar(&opts.NotesDir, "n", "", "Note directory (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("qnote %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return 2
	}

	a, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer a.Close()

	err = dispatch(a, args[0], args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

func dispatch(a *app.App, command string, args []string) error {
	switch command {
	case "list":
		if len(args) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: qnote list")
			return errUsage
		}
		return a.List(os.Stdout)
	case "new":
		return a.Create(os.Stdout, strings.Join(args, " "))
	case "show":
		return cmdShow(a, args)
	case "search":
		return cmdSearch(a, args)
	case "replace":
		return cmdReplace(a, args)
	case "spell":
		return cmdSpell(a, args)
	case "watch":
		return cmdWatch(a, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", command)
		usage()
		return errUsage
	}
}

func cmdShow(a *app.App, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: qnote show <id>")
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return a.Show(os.Stdout, id)
}

func cmdSearch(a *app.App, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	opts := searchFlags(fs, a)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: qnote search [options] <term>")
		return errUsage
	}
	return a.Search(os.Stdout, fs.Arg(0), *opts)
}

func cmdReplace(a *app.App, args []string) error {
	fs := flag.NewFlagSet("replace", flag.ContinueOnError)
	opts := searchFlags(fs, a)
	dryRun := fs.Bool("dry-run", false, "Report changes without saving")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: qnote replace [options] <term> <replacement>")
		return errUsage
	}
	return a.Replace(os.Stdout, fs.Arg(0), fs.Arg(1), *opts, *dryRun)
}

// searchFlags registers the matching options shared by search and
// replace. Case sensitivity defaults to the configured value.
func searchFlags(fs *flag.FlagSet, a *app.App) *search.Options {
	opts := &search.Options{}
	fs.BoolVar(&opts.CaseSensitive, "case", a.Config().Search.CaseSensitive, "Case sensitive matching")
	fs.BoolVar(&opts.WholeWord, "word", false, "Match whole words only")
	fs.BoolVar(&opts.Regex, "regex", false, "Treat the term as a regular expression")
	return opts
}

func cmdSpell(a *app.App, args []string) error {
	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return a.Spell(os.Stdout, ids)
}

func cmdWatch(a *app.App, args []string) error {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "Usage: qnote watch")
		return errUsage
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Watch(ctx, os.Stdout)
}

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid note ID %q\n", arg)
		return uuid.Nil, errUsage
	}
	return id, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "QNote - plain text notes from the command line\n\n")
	fmt.Fprintf(os.Stderr, "Usage: qnote [options] <command> [arguments]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  list                      List notes, newest first\n")
	fmt.Fprintf(os.Stderr, "  new [title]               Create a note and print its ID\n")
	fmt.Fprintf(os.Stderr, "  show <id>                 Print a note's content\n")
	fmt.Fprintf(os.Stderr, "  search [options] <term>   Find a term across all notes\n")
	fmt.Fprintf(os.Stderr, "  replace [options] <term> <replacement>\n")
	fmt.Fprintf(os.Stderr, "                            Replace a term across all notes\n")
	fmt.Fprintf(os.Stderr, "  spell [id...]             Report unknown words\n")
	fmt.Fprintf(os.Stderr, "  watch                     Stream external note changes\n")
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  qnote new Shopping        Create a note titled Shopping\n")
	fmt.Fprintf(os.Stderr, "  qnote search -word cat    Whole-word search for cat\n")
	fmt.Fprintf(os.Stderr, "  qnote replace -dry-run a b\n")
	fmt.Fprintf(os.Stderr, "                            Preview replacing a with b\n")
}
