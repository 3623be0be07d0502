// Package publish implements the publish workflow: export HEAD into a
// private temporary directory, assert the testdata directory is empty
// and drop it, then run the package manager's publish command inside
// the extracted tree.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kwalter/shipit/internal/exportdir"
	"github.com/kwalter/shipit/internal/gitutil"
	"github.com/kwalter/shipit/internal/untar"
)

// TestdataDirName is the directory asserted empty and removed from
// every export before publishing.
const TestdataDirName = "testdata"

// Options configure a single publish run.
type Options struct {
	// RepoRoot is the top level of the working tree to export.
	RepoRoot string
	// Package is the subdirectory to publish, relative to the export
	// root. Empty means the root itself.
	Package string
	// TempRoot is the parent for the per-run export directory.
	// Empty selects the operating system default.
	TempRoot string
	// Command is the publish argv; Command[0] is the binary.
	Command []string
	// DryRun stops after the testdata check and reports the plan.
	DryRun bool
	// KeepTemp disarms export directory cleanup.
	KeepTemp bool

	Stdout io.Writer
	Stderr io.Writer
	Log    *log.Logger
}

// Result describes what a run did, or for dry runs, would have done.
type Result struct {
	Head       string
	Package    string
	PackageDir string
	// ExportDir is set only when the directory was kept.
	ExportDir string
	Command   []string
	Published bool
}

// ValidatePackage rejects package paths that could point outside the
// exported tree.
func ValidatePackage(pkg string) error {
	if pkg == "" {
		return nil
	}
	if filepath.IsAbs(pkg) {
		return fmt.Errorf("package %q must be a relative path", pkg)
	}
	clean := filepath.Clean(filepath.FromSlash(pkg))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("package %q escapes the repository", pkg)
	}
	return nil
}

// Run executes the workflow. The export directory is removed on every
// return path unless Options.KeepTemp is set. Cancelling ctx kills any
// in-flight child process; cleanup still runs.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ValidatePackage(opts.Package); err != nil {
		return nil, err
	}
	if len(opts.Command) == 0 {
		return nil, errors.New("publish command is empty")
	}

	logger := opts.Log
	if logger == nil {
		logger = log.New(io.Discard)
	}

	head, err := gitutil.HeadCommit(opts.RepoRoot)
	if err != nil {
		return nil, err
	}

	dir, err := exportdir.New(opts.TempRoot)
	if err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	defer dir.Cleanup() //nolint:errcheck
	kept := ""
	if opts.KeepTemp {
		kept = dir.Release()
	}
	logger.Debug("created export directory", "path", dir.Path())

	if err := exportHead(ctx, opts.RepoRoot, dir.Path()); err != nil {
		return nil, err
	}
	logger.Debug("extracted committed tree", "commit", head)

	if err := removeTestdata(dir.Path()); err != nil {
		return nil, err
	}
	logger.Debug("removed empty testdata directory")

	pkgDir := dir.Path()
	if opts.Package != "" {
		pkgDir = filepath.Join(dir.Path(), filepath.FromSlash(opts.Package))
		info, err := os.Stat(pkgDir)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", opts.Package, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("package %s is not a directory", opts.Package)
		}
	}

	res := &Result{
		Head:       head,
		Package:    opts.Package,
		PackageDir: pkgDir,
		ExportDir:  kept,
		Command:    opts.Command,
	}
	if opts.DryRun {
		logger.Debug("dry run; not publishing")
		return res, nil
	}

	logger.Debug("running publish command", "argv", strings.Join(opts.Command, " "), "dir", pkgDir)
	cmd := exec.CommandContext(ctx, opts.Command[0], opts.Command[1:]...)
	cmd.Dir = pkgDir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("publish command %q: %w", strings.Join(opts.Command, " "), err)
	}
	res.Published = true
	return res, nil
}

func exportHead(ctx context.Context, repoRoot, dest string) error {
	if err := gitutil.ArchiveHEAD(ctx, repoRoot, func(r io.Reader) error {
		return untar.Extract(r, dest)
	}); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// removeTestdata drops the top-level testdata directory from the
// export. The removal is deliberately non-recursive: a missing or
// non-empty directory aborts the run, asserting that no tracked files
// live under testdata and would sneak into the published artifact.
func removeTestdata(dir string) error {
	path := filepath.Join(dir, TestdataDirName)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w (the exported tree must contain %s as an empty directory)", path, err, TestdataDirName)
	}
	return nil
}
