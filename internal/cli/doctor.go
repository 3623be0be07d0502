package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kwalter/shipit/internal/config"
	"github.com/kwalter/shipit/internal/exportdir"
	"github.com/kwalter/shipit/internal/gitutil"
	"github.com/kwalter/shipit/internal/publish"
)

func newDoctorCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose shipit prerequisites and repository issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, verbose)
		},
	}
	cmd.Flags().BoolVar(&verbose, "all", false, "show passing checks too")
	return cmd
}

type doctorContext struct {
	Root   string
	Config config.Config
}

type doctorCheck struct {
	Name string
	Fn   func(*doctorContext) error
}

func runDoctor(cmd *cobra.Command, verbose bool) error {
	ctx := &doctorContext{}
	wd, _ := os.Getwd()
	checks := []doctorCheck{
		{Name: "git installed", Fn: requireOnPath("git")},
		{Name: "inside a git work tree", Fn: func(c *doctorContext) error {
			root, err := gitutil.Toplevel(wd)
			if err != nil {
				return err
			}
			c.Root = root
			return nil
		}},
		{Name: "HEAD resolvable", Fn: func(c *doctorContext) error {
			if c.Root == "" {
				return errors.New("repository not located")
			}
			_, err := gitutil.HeadCommit(c.Root)
			return err
		}},
		{Name: "config loadable", Fn: func(c *doctorContext) error {
			if c.Root == "" {
				return errors.New("repository not located")
			}
			cfg, err := config.Load(filepath.Join(c.Root, config.FileName))
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		}},
		{Name: "publish command on PATH", Fn: checkPublishCommand},
		{Name: "temp root writable", Fn: checkTempRoot},
		{Name: "testdata exports empty", Fn: checkTestdata},
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	var failures []string
	for _, check := range checks {
		err := check.Fn(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", check.Name, err))
			continue
		}
		if verbose {
			fmt.Fprintf(out, "%s %s\n", mark(out, colorGood, "✓"), check.Name)
		}
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintf(errOut, "%s %s\n", mark(errOut, colorBad, "✗"), failure)
		}
		return fmt.Errorf("%d doctor checks failed", len(failures))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "healthy!")
	return nil
}

func requireOnPath(binary string) func(*doctorContext) error {
	return func(*doctorContext) error {
		if _, err := exec.LookPath(binary); err != nil {
			return fmt.Errorf("%s not found on PATH", binary)
		}
		return nil
	}
}

func checkPublishCommand(ctx *doctorContext) error {
	argv, err := config.SplitCommand(ctx.Config.Publish.Command)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("%s not found on PATH", argv[0])
	}
	return nil
}

func checkTempRoot(ctx *doctorContext) error {
	dir, err := exportdir.New(ctx.Config.Workspace.TempRoot)
	if err != nil {
		return err
	}
	return dir.Cleanup()
}

func checkTestdata(ctx *doctorContext) error {
	if ctx.Root == "" {
		return errors.New("repository not located")
	}
	paths, err := gitutil.HeadPaths(ctx.Root)
	if err != nil {
		return err
	}
	present := false
	tracked := 0
	for _, p := range paths {
		if p == publish.TestdataDirName {
			present = true
		}
		if strings.HasPrefix(p, publish.TestdataDirName+"/") {
			tracked++
		}
	}
	if tracked > 0 {
		return fmt.Errorf("%s carries %d tracked entries; publishing would abort", publish.TestdataDirName, tracked)
	}
	if !present {
		return fmt.Errorf("HEAD has no top-level %s entry; publishing would abort", publish.TestdataDirName)
	}
	return nil
}
