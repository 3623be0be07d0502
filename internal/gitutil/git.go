package gitutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Run executes git within dir and returns trimmed stdout.
func Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w\n%s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Toplevel resolves the root of the working tree containing dir.
func Toplevel(dir string) (string, error) {
	return Run(dir, "rev-parse", "--show-toplevel")
}

// HeadCommit returns the full hash of the checked-out commit.
func HeadCommit(dir string) (string, error) {
	return Run(dir, "rev-parse", "HEAD")
}

// Dirty reports whether the working tree has uncommitted/staged changes.
func Dirty(dir string) (bool, error) {
	out, err := Run(dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// HeadPaths lists every path recorded in the HEAD tree. Directories
// appear only through their contents; submodule entries appear as
// their own path.
func HeadPaths(dir string) ([]string, error) {
	out, err := Run(dir, "ls-tree", "-r", "--name-only", "HEAD")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// ArchiveHEAD streams the committed tree at HEAD as an uncompressed tar
// archive into consume. Uncommitted local changes are never part of the
// stream. Cancelling ctx kills the git process.
func ArchiveHEAD(ctx context.Context, dir string, consume func(io.Reader) error) error {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "archive", "--format=tar", "HEAD")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("git archive HEAD: %w", err)
	}
	consumeErr := consume(stdout)
	if consumeErr != nil {
		// Drain the pipe so git is not blocked on write when we wait on it.
		io.Copy(io.Discard, stdout) //nolint:errcheck
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("git archive HEAD: %w\n%s", err, strings.TrimSpace(stderr.String()))
	}
	return consumeErr
}
