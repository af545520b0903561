package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/config"
	"github.com/forgeworks/forge-cli/internal/ui"
)

var (
	listSource string
	listLayout string
)

// listCmd prints the discovered inventory without installing anything.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discoverable components without installing",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listSource, "source", "", "Component source tree (default from .forge.yaml, then .)")
	listCmd.Flags().StringVar(&listLayout, "layout", "", "Source layout: flat or partitioned")
}

// runList discovers and prints the inventory as a table.
func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	source := resolveSource(listSource, cfg)
	mode, err := resolveDiscoveryMode(listLayout, cfg)
	if err != nil {
		return err
	}

	inv, err := catalog.New(mode).Discover(source)
	if err != nil {
		return err
	}
	if inv.Empty() {
		ui.PrintError("No installable components found in %s", source)
		return fmt.Errorf("nothing to list")
	}

	table := ui.NewTable("KIND", "NAME", "CATEGORY", "DETAIL")
	for _, agent := range inv.Agents {
		table.AddRow("agent", agent.Name, string(agent.Category), "paired rules file")
	}
	for _, command := range inv.Commands {
		table.AddRow("command", command.Name, string(command.Category), "")
	}
	for _, cat := range inv.SkillCategories {
		for _, sk := range cat.Skills {
			detail := "file"
			if sk.Type == catalog.SkillTypeDirectory {
				detail = "directory"
				if sk.HasRulesFragment {
					detail = "directory + rules fragment"
				}
			}
			table.AddRow("skill", cat.Name+"/"+sk.Name, string(sk.Category), detail)
		}
	}
	table.Render()
	return nil
}
