// Command maketurn reads a client-edited v3 file tree, diffs it against the
// original Nu turn snapshot, and writes a JSON turn document carrying the
// resulting command records.
//
// Usage:
//
//	maketurn [options] <snapshot.json>
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/nuforge/v3bridge/config"
	"github.com/nuforge/v3bridge/log"
	"github.com/nuforge/v3bridge/maketurn"
	"github.com/nuforge/v3bridge/snapshot"
)

var version = "dev"

type options struct {
	Version func() `short:"V" long:"version" description:"Print version and exit"`
	InDir   string `short:"i" long:"in" description:"Directory holding the client-edited v3 files" default:"."`
	OutFile string `short:"o" long:"out" description:"File to write the JSON turn document to (stdout if omitted)"`
	Verbose bool   `short:"v" long:"verbose" description:"Log at debug level"`
	Args    struct {
		Snapshot string `positional-arg-name:"snapshot" description:"Original Nu turn snapshot JSON file" required:"true"`
	} `positional-args:"yes"`
}

// document is the single `commands`-type section §6 requires as maketurn's
// output: a JSON-encoded turn document carrying the serialized records.
type document struct {
	Commands []string `json:"commands"`
}

func main() {
	var opts options
	opts.Version = func() {
		fmt.Printf("maketurn %s\n", version)
		os.Exit(0)
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "maketurn"
	parser.LongDescription = "Diffs a client-edited v3 file tree against the original snapshot and emits a command-record turn document."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	log.SetLogger(log.NewZerologAdapter(zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()))

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "maketurn:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	data, err := os.ReadFile(opts.Args.Snapshot)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	snap, err := snapshot.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	cfg := config.Config{WorkingDir: opts.InDir}
	result, err := maketurn.Maketurn(snap, cfg)
	if err != nil {
		return fmt.Errorf("reconciling turn: %w", err)
	}

	out, err := json.MarshalIndent(document{Commands: result.Commands}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding turn document: %w", err)
	}

	if opts.OutFile == "" {
		fmt.Println(string(out))
	} else if err := os.WriteFile(opts.OutFile, out, 0o644); err != nil {
		return fmt.Errorf("writing turn document: %w", err)
	}

	if result.NewStock {
		fmt.Fprintln(os.Stderr, "maketurn: new stock records were allocated; a re-download is advisable")
	}
	return nil
}
