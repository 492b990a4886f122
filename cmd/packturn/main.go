// Command packturn reads a Nu turn snapshot and writes the v3 "unpacked"
// directory tree a legacy client expects. It does not write player<N>.rst.
//
// Usage:
//
//	packturn [options] <snapshot.json>
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/nuforge/v3bridge/config"
	"github.com/nuforge/v3bridge/log"
	"github.com/nuforge/v3bridge/pack"
	"github.com/nuforge/v3bridge/snapshot"
)

var version = "dev"

type options struct {
	Version    func() `short:"V" long:"version" description:"Print version and exit"`
	OutDir     string `short:"o" long:"out" description:"Directory to write v3 files into" default:"."`
	RootDir    string `short:"r" long:"root" description:"Directory searched for template spec files" default:"."`
	Verbose    bool   `short:"v" long:"verbose" description:"Log at debug level"`
	Args       struct {
		Snapshot string `positional-arg-name:"snapshot" description:"Nu turn snapshot JSON file" required:"true"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	opts.Version = func() {
		fmt.Printf("packturn %s\n", version)
		os.Exit(0)
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "packturn"
	parser.LongDescription = "Renders a Nu turn snapshot into a v3 unpacked file tree."

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
		fmt.Fprintln(os.Stderr, "packturn:", err)
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

	cfg := config.Config{WorkingDir: opts.OutDir, RootDir: opts.RootDir, Mode: config.ModeUnpacked}
	result, err := pack.Pack(snap, cfg)
	if err != nil {
		return fmt.Errorf("packing turn: %w", err)
	}

	if err := result.Builder.Write(opts.OutDir); err != nil {
		return fmt.Errorf("writing v3 tree: %w", err)
	}

	if residuals := result.Ledger.Residuals(); len(residuals) > 0 {
		fmt.Fprintf(os.Stderr, "packturn: %d flow residual(s) remain; see c2flow.txt\n", len(residuals))
	}
	return nil
}
