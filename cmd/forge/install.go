// Package main provides the install command, the core interactive flow:
// discover, select, copy, merge.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/config"
	"github.com/forgeworks/forge-cli/internal/installer"
	"github.com/forgeworks/forge-cli/internal/paths"
	"github.com/forgeworks/forge-cli/internal/picker"
	"github.com/forgeworks/forge-cli/internal/ui"
)

var (
	installSource   string
	installGlobal   bool
	installLayout   string
	installSelector string
	installAll      bool
	installForce    bool
	installYes      bool
)

// installCmd discovers components, runs selection, and installs the
// chosen subset.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Discover components and install a chosen subset",
	Long: `Discover agents, commands, and skills from a source tree and
install the ones you pick.

By default installs to the project-local directory (./.forge).
Use --global to install to the user-level directory (~/.forge)
instead. The install location also drives which skill categories
are suggested by default.

EXAMPLES:
  forge install                      # Interactive, local install
  forge install --global             # Interactive, user-level install
  forge install --all --yes          # Everything, no prompts
  forge install --selector browser   # Navigable folder tree
  forge install --source ./catalog   # Explicit source tree`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installSource, "source", "", "Component source tree (default from .forge.yaml, then .)")
	installCmd.Flags().BoolVar(&installGlobal, "global", false, "Install to the user-level directory instead of project-level")
	installCmd.Flags().StringVar(&installLayout, "layout", "", "Source layout: flat or partitioned")
	installCmd.Flags().StringVar(&installSelector, "selector", "", "Selection mode: prompts or browser")
	installCmd.Flags().BoolVar(&installAll, "all", false, "Select every discovered component without prompting")
	installCmd.Flags().BoolVar(&installForce, "force", false, "Overwrite components that already exist at the target")
	installCmd.Flags().BoolVar(&installYes, "yes", false, "Skip the final confirmation")
}

// runInstall executes the full install pipeline.
//
// Parameters:
//   - cmd: The cobra command being executed
//   - args: Command arguments (unused, validated as empty by cobra)
//
// Returns:
//   - error: Fatal failures only; cancellation and empty selection
//     return nil after an informational message
func runInstall(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	source := resolveSource(installSource, cfg)
	location := resolveLocation(installGlobal, cfg)
	mode, err := resolveDiscoveryMode(installLayout, cfg)
	if err != nil {
		return err
	}

	log.Debug("discovering components", "source", source, "layout", mode)
	inv, err := catalog.New(mode).Discover(source)
	if err != nil {
		return err
	}
	if inv.Empty() {
		ui.PrintError("No installable components found in %s", source)
		ui.PrintDim("Expected agents/, commands/, or skills/ under the source tree.")
		return fmt.Errorf("nothing to install")
	}

	agents, commands, skills := inv.Counts()
	ui.PrintInfo("Discovered %d agents, %d commands, %d skills", agents, commands, skills)

	sel, err := buildSelection(inv, location, cfg)
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			ui.PrintInfo("Selection cancelled.")
			return nil
		}
		return err
	}
	if sel.Empty() {
		ui.PrintInfo("Nothing selected, nothing to do.")
		return nil
	}

	root, err := paths.Root(location)
	if err != nil {
		return err
	}

	if !installYes {
		ui.Println()
		ui.PrintInfo("Selected %d agents, %d commands, %d skills",
			len(sel.Agents), len(sel.Commands), sel.SkillCount())
		ok, err := ui.PromptConfirm(fmt.Sprintf("Install to %s?", root), true)
		if err != nil || !ok {
			ui.PrintInfo("Installation cancelled.")
			return nil
		}
	}

	res, err := installer.Install(root, sel, installer.Options{Force: installForce})
	if err != nil {
		return err
	}
	printInstallSummary(root, res)
	return nil
}

// buildSelection picks the selector for the run and executes it.
func buildSelection(inv catalog.Inventory, location paths.Location, cfg *config.Config) (catalog.Selection, error) {
	if installAll {
		return picker.SelectAll(inv), nil
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !interactive {
		return catalog.Selection{}, fmt.Errorf("stdout is not a terminal; use --all for non-interactive installs")
	}

	mode, err := resolveSelectorMode(installSelector, cfg)
	if err != nil {
		return catalog.Selection{}, err
	}
	return picker.NewSelector(mode).Run(inv, location)
}

// printInstallSummary reports the run outcome.
func printInstallSummary(root string, res *installer.Result) {
	ui.Println()
	ui.Separator()
	ui.PrintSuccess("Installed %d components to %s", res.Total(), root)
	for _, name := range res.Agents {
		ui.PrintDim("  agent    %s", name)
	}
	for _, name := range res.Commands {
		ui.PrintDim("  command  %s", name)
	}
	for _, name := range res.Skills {
		ui.PrintDim("  skill    %s", name)
	}
	if len(res.Skipped) > 0 {
		ui.PrintWarning("Skipped %d existing components (use --force to overwrite)", len(res.Skipped))
		for _, name := range res.Skipped {
			ui.PrintDim("  %s", name)
		}
	}
	if res.MergedRuleSources > 0 {
		ui.PrintInfo("Merged %d rule fragments into %s", res.MergedRuleSources, paths.RulesFileName)
	}
}

// --- Flag/config resolution ---

// resolveSource picks the component source tree: flag, then config,
// then the working directory.
func resolveSource(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.Source != "" {
		return cfg.Source
	}
	return "."
}

// resolveLocation picks the install location: the --global flag wins,
// then the config default, then local.
func resolveLocation(global bool, cfg *config.Config) paths.Location {
	if global {
		return paths.LocationGlobal
	}
	if loc, err := paths.ParseLocation(cfg.Location); err == nil {
		return loc
	}
	return paths.LocationLocal
}

// resolveDiscoveryMode picks the source layout: flag, then config, then
// flat.
func resolveDiscoveryMode(flag string, cfg *config.Config) (catalog.Mode, error) {
	if flag != "" {
		return catalog.ParseMode(flag)
	}
	if cfg.Discovery != "" {
		return catalog.ParseMode(cfg.Discovery)
	}
	return catalog.ModeFlat, nil
}

// resolveSelectorMode picks the selection protocol: flag, then config,
// then sequential prompts.
func resolveSelectorMode(flag string, cfg *config.Config) (picker.SelectorMode, error) {
	if flag != "" {
		return picker.ParseSelectorMode(flag)
	}
	if cfg.Selector != "" {
		return picker.ParseSelectorMode(cfg.Selector)
	}
	return picker.ModePrompts, nil
}
