package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/config"
	"github.com/Mause/tuya-graphing/pkg/fsutil"
	"github.com/Mause/tuya-graphing/pkg/hook"
	version "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

// NewHooksCmd creates the hooks command with subcommands.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the hook manifest",
		Long:  "Inspect the hook manifest and scaffold hook scripts",
	}

	cmd.AddCommand(
		newHooksListCmd(),
		newHooksCheckCmd(),
		newHooksInitCmd(),
	)

	return cmd
}

func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List manifest entries",
		Long:  "Display every source entry and its hooks, in execution order",
		RunE:  runHooksList,
	}
}

func newHooksCheckCmd() *cobra.Command {
	var minRev string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check pinned revisions",
		Long:  "Parse every entry's pinned revision and report which are version-shaped and which are outdated",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runHooksCheck(minRev)
		},
	}

	cmd.Flags().StringVar(&minRev, "min", "", "Report entries pinned below this version as outdated")

	return cmd
}

func newHooksInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init HOOK_ID",
		Short: "Scaffold a hook script",
		Long:  "Create a template Tengo script for the given hook id in the script directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runHooksInit(args[0], force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing script")

	return cmd
}

func loadManifest(cfg *config.Config) (*hook.Manifest, error) {
	if cfg.Hooks.ManifestPath == "" {
		return nil, fmt.Errorf("no hook manifest configured")
	}
	return hook.LoadManifest(cfg.Hooks.ManifestPath)
}

func runHooksList(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manifest, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	executor := hook.NewTengoExecutor()
	if err := hook.LoadScripts(executor, cfg.Hooks.ScriptDir); err != nil {
		return err
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "REPO\tREV\tHOOK\tARGS\tSCRIPT")
	for _, entry := range manifest.Repos {
		for _, h := range entry.Hooks {
			scripted := "-"
			if executor.HasHook(h.ID) {
				scripted = "yes"
			}
			_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\t%s\t%s\n",
				entry.Repo, entry.Rev, h.ID, strings.Join(h.Args, " "), scripted)
		}
	}
	return tabWriter.Flush()
}

func runHooksCheck(minRev string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manifest, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	var minimum *version.Version
	if minRev != "" {
		minimum, err = version.NewVersion(strings.TrimPrefix(minRev, "v"))
		if err != nil {
			return fmt.Errorf("invalid --min: %w", err)
		}
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "REPO\tREV\tSTATUS")
	for i, result := range manifest.Check() {
		status := "ok"
		switch {
		case result.VersionErr != nil:
			status = "not version-shaped"
		case minimum != nil && manifest.Repos[i].Outdated(minimum):
			status = "outdated (< " + minimum.String() + ")"
		}
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", result.Repo, result.Rev, status)
	}
	return tabWriter.Flush()
}

func runHooksInit(hookID string, force bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Hooks.ScriptDir == "" {
		return fmt.Errorf("no hook script directory configured")
	}

	if err := os.MkdirAll(cfg.Hooks.ScriptDir, fsutil.DirModeDefault); err != nil {
		return err
	}

	path := filepath.Join(cfg.Hooks.ScriptDir, hookID+".tengo")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("script %s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(hook.ScriptTemplate(hookID)), fsutil.FileModeDefault); err != nil {
		return err
	}

	logger.Success("Hook script created", logger.Fields{"path": path})
	return nil
}
