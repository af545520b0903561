package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/forgeworks/forge-cli/internal/catalog"
	"github.com/forgeworks/forge-cli/internal/paths"
)

// SequentialSelector presents one multi-select prompt per kind, then one
// per non-empty skill category, in stable inventory order.
//
// Agents and commands are default-checked. A skill category is
// default-checked iff its name is in the location's suggested set.
type SequentialSelector struct{}

// Run executes the prompt sequence and returns the accumulated
// selection. Returns ErrCancelled when the user aborts any prompt.
func (SequentialSelector) Run(inv catalog.Inventory, location paths.Location) (catalog.Selection, error) {
	marked := map[string]bool{}
	suggested := SuggestedCategories(location)

	if len(inv.Agents) > 0 {
		opts := make([]huh.Option[string], 0, len(inv.Agents))
		for _, agent := range inv.Agents {
			opts = append(opts, huh.NewOption(agent.DisplayName, AgentID(agent.Name)).Selected(true))
		}
		if err := runMultiSelect("Agents", "Paired instruction and rules files.", opts, marked); err != nil {
			return catalog.Selection{}, err
		}
	}

	if len(inv.Commands) > 0 {
		opts := make([]huh.Option[string], 0, len(inv.Commands))
		for _, command := range inv.Commands {
			opts = append(opts, huh.NewOption(command.DisplayName, CommandID(command.Name)).Selected(true))
		}
		if err := runMultiSelect("Commands", "Single instruction files.", opts, marked); err != nil {
			return catalog.Selection{}, err
		}
	}

	for _, cat := range inv.SkillCategories {
		if len(cat.Skills) == 0 {
			continue
		}
		checked := suggested[cat.Name]
		opts := make([]huh.Option[string], 0, len(cat.Skills))
		for _, sk := range cat.Skills {
			opts = append(opts, huh.NewOption(sk.DisplayName, SkillID(cat.Name, sk.Name)).Selected(checked))
		}
		title := fmt.Sprintf("Skills · %s", cat.DisplayName)
		if err := runMultiSelect(title, "", opts, marked); err != nil {
			return catalog.Selection{}, err
		}
	}

	return SelectionFromIDs(inv, marked), nil
}

// runMultiSelect runs one checkbox prompt and records the chosen ids in
// marked.
func runMultiSelect(title, description string, opts []huh.Option[string], marked map[string]bool) error {
	var chosen []string
	field := huh.NewMultiSelect[string]().
		Title(title).
		Description(description).
		Options(opts...).
		Value(&chosen)

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("running selection prompt: %w", err)
	}

	for _, id := range chosen {
		marked[id] = true
	}
	return nil
}
