package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kwalter/shipit/internal/config"
	"github.com/kwalter/shipit/internal/gitutil"
	"github.com/kwalter/shipit/internal/publish"
)

type publishOptions struct {
	dryRun     bool
	keepTemp   bool
	command    string
	allowDirty bool
}

func runPublish(cmd *cobra.Command, opts *publishOptions, args []string) error {
	pkg := ""
	if len(args) == 1 {
		pkg = args[0]
	}
	if err := publish.ValidatePackage(pkg); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := gitutil.Toplevel(wd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return err
	}

	command := cfg.Publish.Command
	if opts.command != "" {
		command = opts.command
	}
	argv, err := config.SplitCommand(command)
	if err != nil {
		return err
	}

	if !opts.allowDirty && !cfg.Publish.AllowDirty {
		dirty, err := gitutil.Dirty(root)
		if err != nil {
			return err
		}
		if dirty {
			errOut := cmd.ErrOrStderr()
			fmt.Fprintf(errOut, "%s uncommitted changes detected; only the committed tree at HEAD is published\n",
				mark(errOut, colorWarn, "!"))
		}
	}

	res, err := publish.Run(cmd.Context(), publish.Options{
		RepoRoot: root,
		Package:  pkg,
		TempRoot: cfg.Workspace.TempRoot,
		Command:  argv,
		DryRun:   opts.dryRun,
		KeepTemp: opts.keepTemp,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Log:      workflowLogger(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		renderPlan(out, res)
		return nil
	}
	fmt.Fprintf(out, "%s published %s from %s\n",
		mark(out, colorGood, "✓"), packageLabel(res.Package), shortHash(res.Head))
	if res.ExportDir != "" {
		fmt.Fprintf(out, "export kept at %s\n", res.ExportDir)
	}
	return nil
}

func packageLabel(pkg string) string {
	if pkg == "" {
		return "the root package"
	}
	return pkg
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
