// Package pack implements the pack pipeline (C8): it drives the spec-file
// synthesizer, entity packers, message renderer, and flow ledger to build
// the full v3 file tree from one Nu turn object.
package pack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nuforge/v3bridge/log"
)

// Builder accumulates the pack run's output files in memory and writes them
// once at the end, rather than holding live file handles the way the
// source's module-scope RST/UTIL/FILE globals did (Design Notes §9).
type Builder struct {
	Files    map[string][]byte
	Warnings []string
	DeadFiles []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{Files: make(map[string][]byte)}
}

// Set stages a file's full contents for the eventual write.
func (b *Builder) Set(name string, data []byte) {
	b.Files[name] = data
}

// Warn records a non-fatal diagnostic the caller can surface after Pack
// returns.
func (b *Builder) Warn(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	b.Warnings = append(b.Warnings, msg)
	log.GetLogger().Warn(msg)
}

// MarkDead records a filename pack must remove from the working directory
// (§4.8 step 7: rewrite dead files from a prior turn).
func (b *Builder) MarkDead(name string) {
	b.DeadFiles = append(b.DeadFiles, name)
}

// Write persists every staged file into dir and removes every file marked
// dead. There is no transactional rollback (§5): a failure partway through
// leaves a partially written tree.
func (b *Builder) Write(dir string) error {
	for _, name := range b.DeadFiles {
		_ = os.Remove(filepath.Join(dir, name))
	}
	for name, data := range b.Files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
